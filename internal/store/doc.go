// Package store defines the persistence interfaces used by the request
// handlers, together with the transaction helper and the audit stamper that
// every implementation shares.
//
// Implementations never hard delete: Delete marks rows as deleted and every
// read ignores marked rows.
package store
