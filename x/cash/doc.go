/*
Package cash defines a simple ledger of native coins held by
accounts and contracts.

There is no logic in the coins (tokens), except that the balance
of any account may not go below zero or overflow. Thus, this
implementation is referred to as cash. Simple and safe.
*/
package cash
