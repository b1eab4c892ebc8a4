/*
Package chain is a minimal host platform for contracts.

It keeps a coin ledger and the code registry, and runs every contract call
as a single serialized unit of work. Each call executes inside its own
savepoint: the changes are written to the parent only if the call returns
without an error. Contracts may call other contracts (including the one that
called them) through their Env, which nests savepoints the same way.
*/
package chain
