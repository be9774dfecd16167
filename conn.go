package ili9341

import (
	"errors"
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Conn errors.
var (
	ErrResetPin = errors.New("ili9341: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("ili9341: data/command (DC) GPIO pin is invalid")
)

// Conn is the connection interface for communicating with the panel.
//
// The data/command select line is driven out-of-band: Command asserts it
// low for the opcode byte and high for the payload, Data asserts it high
// for the whole transfer.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Data sends data bytes. Sending no bytes is a no-op.
	Data(...byte) error
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Speed is the SPI clock frequency. Defaults to 26MHz, the fastest
	// the ILI9341 reliably clocks without overclocking.
	Speed physic.Frequency

	// Mode is the SPI mode, normally spi.Mode0.
	Mode spi.Mode

	// BatchSize limits the size of a single bus transfer.
	BatchSize int

	// Reset pin, required.
	Reset gpio.PinOut

	// DC is the data/command select pin, required.
	DC gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Speed:     26 * physic.MegaHertz,
	Mode:      spi.Mode0,
	BatchSize: 4096,
}

type spiConn struct {
	port      spi.PortCloser
	bus       spi.Conn
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	batchSize int
}

// OpenSPI connects to the panel on the provided SPI port.
func OpenSPI(port spi.PortCloser, config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	if config.Reset == nil || config.Reset == gpio.INVALID {
		return nil, ErrResetPin
	}
	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}

	if config.Speed == 0 {
		config.Speed = DefaultSPIConfig.Speed
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}

	bus, err := port.Connect(config.Speed, config.Mode, 8)
	if err != nil {
		return nil, fmt.Errorf("ili9341: SPI connect failed: %w", err)
	}

	c := &spiConn{
		port:      port,
		bus:       bus,
		reset:     config.Reset,
		dc:        config.DC,
		dcLevel:   gpio.Low,
		batchSize: config.BatchSize,
	}
	if err = c.dc.Out(gpio.Low); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *spiConn) Close() error {
	return c.port.Close()
}

func (c *spiConn) Reset(level gpio.Level) error {
	return c.reset.Out(level)
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel = level
	}
	return nil
}

func (c *spiConn) Command(cmnd byte, data ...byte) (err error) {
	if err = c.updateDC(gpio.Low); err != nil {
		return
	}
	if err = c.bus.Tx([]byte{cmnd}, nil); err != nil {
		return
	}
	if len(data) > 0 {
		if err = c.updateDC(gpio.High); err != nil {
			return
		}
		if err = c.writeBatched(data); err != nil {
			return
		}
	}
	return
}

func (c *spiConn) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(gpio.High); err != nil {
		return
	}
	return c.writeBatched(data)
}

func (c *spiConn) writeBatched(data []byte) (err error) {
	if len(data) < c.batchSize {
		return c.bus.Tx(data, nil)
	}

	if debug {
		log.Printf("write %d bytes of data in %d batches", len(data), (len(data)+c.batchSize-1)/c.batchSize)
	}
	buffer := data
	for len(buffer) > 0 {
		if len(buffer) > c.batchSize {
			if err = c.bus.Tx(buffer[:c.batchSize], nil); err != nil {
				return
			}
			buffer = buffer[c.batchSize:]
		} else {
			if err = c.bus.Tx(buffer, nil); err != nil {
				return
			}
			buffer = nil
		}
	}
	return
}
