/*
Package runtime executes signed transactions against a KVStore.

Every transaction runs inside a savepoint of the store. Each instruction is
routed to the program registered for its program id, given the accounts it
names and, after the program returns, checked against the account rules:

	- an account the instruction did not mark writable is never changed,
	- only the owner program changes data or debits lamports,
	- the owner is only reassigned by the owner and only with zeroed data,
	- the executable flag never changes,
	- the lamport total of all accounts is the same before and after.

Programs call other programs through swap.Invoke and swap.InvokeSigned. The
same rules are applied to every nested instruction. A program may sign for
addresses derived from its own id by passing the seeds.

Any failure, including a panic, discards every change the transaction made.
Accounts left with zero lamports are removed.
*/
package runtime
