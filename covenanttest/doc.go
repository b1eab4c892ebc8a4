/*
Package covenanttest provides helpers for testing contracts and the host.
*/
package covenanttest
