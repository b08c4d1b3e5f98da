// Package lendbook implements the Lend Book to Customer use case.
//
// It follows the Read-Decide-Apply pattern: the CommandHandler reads the book and the customer,
// the pure Decide function applies the business rules and computes the expected return from the
// book's loan type, and the handler applies the decision with one conditional write.
//
// If another operator lends the same book between the read and the write, the write matches no
// row, the handler retries, and the fresh read makes Decide reject the command as already loaned.
package lendbook
