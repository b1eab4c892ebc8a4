/*
Package multisig implements a multi-owner wallet contract.

A fixed set of weighted owners collectively approves operations before they
are executed. An operation is either a transaction (a plain coin transfer
from the wallet) or a call of another contract with coins attached. Any
address may submit an operation and only the creator may cancel it. Owners
confirm or revoke their vote, each confirmation adding the owner weight to
the operation tally. Once the tally reaches the wallet threshold the
operation is validated and anyone may execute it.

The weight of an owner is the number of times its address is present in the
owner list given to the constructor. The owner set never changes after
construction.

Execution removes the operation before performing the transfer or the call,
so a called contract that reenters the wallet cannot execute the same
operation again.
*/
package multisig
