/*
Package rent holds the ledger rent parameters.

Rent is not collected. Programs use the parameters to refuse accounts that
do not hold enough lamports to be exempt, which is the minimum balance for
the length of their data. The parameters live in a sysvar account at
swap.RentSysvarID that is created at genesis and read only afterwards.
*/
package rent
