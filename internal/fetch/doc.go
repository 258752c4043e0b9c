// Package fetch provides the HTTP client used to download the trending
// listing and repository README files.
//
// Every request is a single attempt bounded by its own timeout. Bodies are
// decoded to UTF-8 using golang.org/x/net/html/charset, with invalid byte
// sequences replaced rather than rejected.
//
// Requests can optionally be routed through a SOCKS5 proxy (for example a
// local Tor daemon or an SSH tunnel) using golang.org/x/net/proxy.
package fetch
