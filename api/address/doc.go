// Package address derives sub-addresses and converts key pairs to and from
// bech32 address strings.
package address
