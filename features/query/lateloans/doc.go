// Package lateloans implements the Late Loans read model: the append-only audit trail of late returns.
package lateloans
