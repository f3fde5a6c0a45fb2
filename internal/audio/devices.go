package audio

import (
	"fmt"
	"io"

	"github.com/gordonklaus/portaudio"
)

// DefaultDevice selects the system default device.
const DefaultDevice = -1

// Initialize sets up PortAudio. Pair every call with Terminate.
func Initialize() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: initialize PortAudio: %w", err)
	}
	return nil
}

// Terminate shuts PortAudio down.
func Terminate() error {
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("audio: terminate PortAudio: %w", err)
	}
	return nil
}

// InputDevice returns the device with index id, or the default input device
// for DefaultDevice.
func InputDevice(id int) (*portaudio.DeviceInfo, error) {
	if id == DefaultDevice {
		return portaudio.DefaultInputDevice()
	}
	return deviceByID(id)
}

// OutputDevice returns the device with index id, or the default output
// device for DefaultDevice.
func OutputDevice(id int) (*portaudio.DeviceInfo, error) {
	if id == DefaultDevice {
		return portaudio.DefaultOutputDevice()
	}
	return deviceByID(id)
}

func deviceByID(id int) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	if id < 0 || id >= len(devices) {
		return nil, fmt.Errorf("audio: invalid device ID %d", id)
	}
	return devices[id], nil
}

// ListDevices writes one entry per PortAudio device to w.
func ListDevices(w io.Writer) error {
	devices, err := portaudio.Devices()
	if err != nil {
		return err
	}

	for i, d := range devices {
		fmt.Fprintf(w, "[%d] %s (%s)\n", i, d.Name, deviceKind(d.MaxInputChannels, d.MaxOutputChannels))
		fmt.Fprintf(w, "    channels: in=%d out=%d, default rate %.0f Hz\n",
			d.MaxInputChannels, d.MaxOutputChannels, d.DefaultSampleRate)
		fmt.Fprintf(w, "    latency: low=%.2fms high=%.2fms\n",
			d.DefaultLowOutputLatency.Seconds()*1000,
			d.DefaultHighOutputLatency.Seconds()*1000)
	}
	return nil
}

func deviceKind(in, out int) string {
	switch {
	case in > 0 && out > 0:
		return "input/output"
	case in > 0:
		return "input"
	case out > 0:
		return "output"
	default:
		return "none"
	}
}
