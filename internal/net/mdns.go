package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const ServiceType = "_paintboard._tcp"

var ErrNoHost = errors.New("no paintboard host found")

// Advertise announces a hosted board on the local network. Shut the returned
// server down when hosting ends.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	var ips []net.IP
	if ip, err := GetOutgoingIP(); err == nil {
		ips = append(ips, net.ParseIP(ip))
	}

	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, ips, []string{"PaintBoard"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse returns the host:port of the first board advertised on the local
// network within timeout.
func Browse(ctx context.Context, timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(chan string, 1)
	drained := make(chan struct{})

	go func() {
		defer close(drained)
		for e := range entries {
			if addr, ok := entryAddr(e); ok {
				select {
				case found <- addr:
				default:
				}
			}
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	errc := make(chan error, 1)
	go func() {
		errc <- mdns.Query(params)
		close(entries)
	}()

	select {
	case addr := <-found:
		return addr, nil
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-errc:
		<-drained
		select {
		case addr := <-found:
			return addr, nil
		default:
		}
		if err != nil {
			return "", fmt.Errorf("mdns query: %w", err)
		}
		return "", ErrNoHost
	}
}

func entryAddr(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	return net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port)), true
}
