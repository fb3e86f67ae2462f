/*
Package escrow implements a trustless exchange of two tokens.

> An escrow is a financial arrangement where a third party holds and regulates
> payment of the funds required for two parties involved in a given transaction.

Here the third party is the program itself. The initializer moves the
tokens it offers into a temporary token account and hands the ownership of
that account to an address derived from the program id. No private key
exists for that address, so only this program can sign for it. The escrow
record stores who is waiting for how many tokens of the other kind.

Anybody holding the expected tokens can take the offer. The taker's tokens
go to the initializer, the tokens held by the temporary account go to the
taker, and the temporary and escrow accounts are closed, returning their
lamports to the initializer. Either all of it happens or nothing does.
*/
package escrow
