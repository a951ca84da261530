// Package commands contains validated command objects for the write side of
// the order lifecycle, plus their handlers. Commands are constructed through
// guarded constructors so a handler can trust every field it reads; handlers
// translate the command into a call on the matching port.
package commands
