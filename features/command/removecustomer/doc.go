// Package removecustomer implements the Remove Customer use case.
//
// A customer can only be removed while they hold no open loan. CanRemove is the guard check
// without side effects; Handle checks again and deletes with a conditional write.
// Late-loan records of the customer are kept.
package removecustomer
