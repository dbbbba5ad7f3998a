package net

import (
	"net"
	"strconv"

	"RmBoard/internal/logging"
)

// OutgoingIP returns the address of the interface that routes off-host.
// Without a route it falls back to the first IPv4 interface that is up.
func OutgoingIP() net.IP {
	// UDP dial only selects a route, nothing is sent
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok && !addr.IP.IsUnspecified() {
			return addr.IP
		}
	}
	ip := firstIPv4()
	if ip.IsLoopback() {
		logging.Warn("no LAN address found, share link is local only")
	}
	return ip
}

// ShareURL is the preview address to hand to other machines.
func ShareURL(port int) string {
	return "http://" + net.JoinHostPort(OutgoingIP().String(), strconv.Itoa(port)) + "/"
}
