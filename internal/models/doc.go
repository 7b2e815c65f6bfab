// Package models defines the domain models for AquaFlow.
//
// # Stored models
//
//   - Customer: a metered connection, owning its readings and scan history
//   - Reading: one recorded meter value with the bill computed for it
//   - ScanEntry: one AI consumption analysis of a customer's history
//   - User: an operator account used to sign in to the service
//   - AppState: per-operator view state (focused customer, pending OCR
//     reading, latest insight, dismissed alerts, alert filter)
//
// # Derived models
//
// Alert, Invoice and Summary are never persisted. They are recomputed from
// the stored models on every request.
//
// Relationships use ID strings rather than pointers. A Customer exclusively
// owns its Readings and Scans; nothing else refers to them.
package models
