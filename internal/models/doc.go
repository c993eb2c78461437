// Package models defines the core domain models for the Splitr backend.
//
// # Persisted Models
//
//   - User: a registered account; referenced by id everywhere else
//   - Expense: a paid amount split among users, optionally attached to a Group
//   - Group: a named set of members with roles
//
// # Derived Models
//
//   - ContactUser / ContactGroup: projections returned by contact discovery.
//     Never persisted; rebuilt from the ledger on every query.
//
// # Design Principles
//
// 1. **ID references only**: models reference each other by id string, never by
// pointer, to avoid circular references and keep storage round-trips simple.
// 2. **Immutable membership**: a group's member list is fixed at creation;
// member add/remove is out of scope for this backend.
package models
