// Package netutil resolves the machine's primary address for the "auto"
// database-host mode.
package netutil

import "net"

// LocalIP returns the machine's primary outbound IPv4 address. It opens a
// UDP socket toward a public address, which selects the default route
// without sending any packets, and falls back to localhost when the
// machine has no usable interface.
func LocalIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "localhost"
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil {
		return "localhost"
	}
	return addr.IP.String()
}

// InterfaceIPs lists the machine's non-loopback IPv4 addresses.
func InterfaceIPs() []string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	var ips []string
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if v4 := ipNet.IP.To4(); v4 != nil {
			ips = append(ips, v4.String())
		}
	}
	return ips
}
