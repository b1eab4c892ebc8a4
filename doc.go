/*
Package covenant defines all common interfaces shared by the contracts, the
host that runs them and the storage they persist to, as well as
implementations of some of the simpler components (when interfaces would be
too much overhead).

A contract is a program deployed under an Address. Every call into a contract
is handled by its Invoke method, given a Context and an Env. The Env is the
contract's view of the host for the duration of a single call: the private
storage, the caller, the value attached to the call and the primitives to move
coins or call another contract.

We pass context through context.Context between the host and the contracts.
There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level modules
overwriting the value (eg. height).
*/
package covenant
