/*
Package swap defines all common interfaces used to tie together the
ledger runtime, its programs and the storage layer, as well as
implementations of some of the simpler components (when interfaces would be
too much overhead).

An Account is a balance of lamports plus an opaque data blob, owned by a
program. Only the owner program may change the data of an account or debit
its lamports. Programs are invoked with an Instruction naming the accounts
it may touch (AccountMeta) and the access it requests to each of them.

A program can hold authority over accounts without holding any private key
by using a program derived address (see CreateProgramAddress and
FindProgramAddress). Such an address is computed from seeds and the program
id, and is guaranteed to be off the ed25519 curve. The runtime accepts the
seeds given to InvokeSigned in place of a signature.

We pass context through context.Context between the runtime and programs.
There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/
package swap
