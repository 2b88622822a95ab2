// Package ble connects to iDotMatrix-class badges over Bluetooth Low Energy
// and implements the dotmtx.Transport contract on top of the badge's GATT
// write characteristic.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tinygo.org/x/bluetooth"

	"petbots.fbbdev.it/dotmtxled/log"
)

// NamePrefix matches the advertised name of the badges ("IDM-...").
const NamePrefix = "IDM-"

var (
	serviceUUID = mustUUID("000000fa-0000-1000-8000-00805f9b34fb")
	writeUUID   = mustUUID("0000fa02-0000-1000-8000-00805f9b34fb")
)

func mustUUID(s string) bluetooth.UUID {
	uuid, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic("ble: " + err.Error())
	}
	return uuid
}

var errNotConnected = errors.New("ble: not connected")
var errServiceNotFound = errors.New("ble: text service not found")
var errCharNotFound = errors.New("ble: write characteristic not found")
var errBadgeNotFound = errors.New("ble: badge not found")

// Device is a BLE transport for one badge. The target is either the exact
// advertised name, a MAC address, or empty to pick the first badge whose
// advertised name starts with NamePrefix. Device is not safe for concurrent
// use; the chunk stream for one packet must not interleave with another.
type Device struct {
	adapter *bluetooth.Adapter
	target  string

	device    bluetooth.Device
	write     bluetooth.DeviceCharacteristic
	connected bool
}

// New returns an unconnected transport backed by the default adapter.
func New(target string) *Device {
	return &Device{
		adapter: bluetooth.DefaultAdapter,
		target:  target,
	}
}

func (d *Device) match(result bluetooth.ScanResult) bool {
	if d.target == "" {
		return strings.HasPrefix(result.LocalName(), NamePrefix)
	}
	return result.LocalName() == d.target ||
		strings.EqualFold(result.Address.String(), d.target)
}

// scan blocks until the badge is seen, the scan fails or ctx is done.
func (d *Device) scan(ctx context.Context) (bluetooth.ScanResult, error) {
	var found bluetooth.ScanResult
	var ok bool

	scanErr := make(chan error, 1)
	go func() {
		scanErr <- d.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			log.DebugLogger.Printf("seen %s (%s)", result.LocalName(), result.Address.String())
			if !ok && d.match(result) {
				found = result
				ok = true
				adapter.StopScan()
			}
		})
	}()

	select {
	case err := <-scanErr:
		if err != nil {
			return bluetooth.ScanResult{}, fmt.Errorf("ble: scan: %w", err)
		}
	case <-ctx.Done():
		d.adapter.StopScan()
		<-scanErr
		return bluetooth.ScanResult{}, ctx.Err()
	}

	if !ok {
		return bluetooth.ScanResult{}, errBadgeNotFound
	}
	return found, nil
}

// Connect scans for the badge, connects and resolves the write
// characteristic. Calling Connect on a connected Device is a no-op.
func (d *Device) Connect(ctx context.Context) error {
	if d.connected {
		return nil
	}

	if err := d.adapter.Enable(); err != nil {
		return fmt.Errorf("ble: enable adapter: %w", err)
	}

	result, err := d.scan(ctx)
	if err != nil {
		return err
	}

	log.InfoLogger.Printf("connecting to %s (%s)", result.LocalName(), result.Address.String())

	device, err := d.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("ble: connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("ble: discover services: %w", err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return errServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{writeUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("ble: discover characteristics: %w", err)
	}
	if len(chars) == 0 {
		device.Disconnect()
		return errCharNotFound
	}

	d.device = device
	d.write = chars[0]
	d.connected = true
	return nil
}

// Send writes one chunk to the badge. The badge reassembles the packet from
// arrival order, so callers must not reorder or interleave chunks.
func (d *Device) Send(ctx context.Context, chunk []byte) error {
	if !d.connected {
		return errNotConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log.DebugLogger.Printf("writing %d bytes", len(chunk))
	if _, err := d.write.WriteWithoutResponse(chunk); err != nil {
		return fmt.Errorf("ble: write: %w", err)
	}
	return nil
}

// Disconnect drops the link. The Device can be reused; the next Connect
// scans again.
func (d *Device) Disconnect() error {
	if !d.connected {
		return nil
	}
	d.connected = false
	return d.device.Disconnect()
}
