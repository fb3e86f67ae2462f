/*
Package token implements a fungible token program.

A mint account describes a token: its supply, decimals and the authority
allowed to issue more. A token account holds a balance of a single mint for
an owner, the authority allowed to move or close it. Both are regular
accounts owned by the program, created beforehand by the system program
with enough lamports to be rent exempt.

Ownership of a token account can be handed to any address, including one
derived from another program. This is what allows a program to hold
tokens on behalf of its users.
*/
package token
