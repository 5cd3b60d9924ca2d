package server

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ProxySet holds the peers allowed to report the client address through
// X-Forwarded-For. Entries are single addresses or CIDR ranges.
type ProxySet struct {
	prefixes []netip.Prefix
}

// NewProxySet parses the configured proxies, skipping entries that are neither
// an address nor a prefix
func NewProxySet(entries []string) *ProxySet {
	p := &ProxySet{}
	for _, entry := range entries {
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			p.prefixes = append(p.prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			slog.Warn(LogMsgInvalidTrustedProxy, "entry", entry)
			continue
		}
		addr = addr.Unmap()
		p.prefixes = append(p.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return p
}

// Trusts reports whether addr belongs to a configured proxy
func (p *ProxySet) Trusts(addr netip.Addr) bool {
	if p == nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p.prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the address rate limits and alerts are keyed on. The
// forwarded header is honoured only when the direct peer is a trusted proxy,
// and then only its rightmost hop.
func (p *ProxySet) ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	peer, err := netip.ParseAddr(host)
	if err != nil || !p.Trusts(peer) {
		return host
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return host
	}
	hops := strings.Split(forwarded, ",")
	if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
		return last
	}
	return host
}
