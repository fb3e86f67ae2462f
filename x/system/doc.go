/*
Package system implements the program owning every account that was not
assigned to another program.

It is the only way to bring an account into existence with data space for
another program, to hand an unused account over to a program and to move
lamports between plain wallets. Instruction data starts with a little
endian u32 tag.
*/
package system
