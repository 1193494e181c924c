// Pin control user commands for boards that expose GPIO through the terminal
package core

// PinCommands implements the "led" and "gpio" user commands:
//
//	led                 report the LED state
//	led on|off|toggle   drive the LED pin
//	gpio <pin>          read a pin
//	gpio <pin> <0|1>    drive a pin as an output
type PinCommands struct {
	term   *Terminal
	driver GPIODriver
	led    GPIOPin
	maxPin GPIOPin

	outputs uint64 // pins already configured as outputs, by bit
}

// NewPinCommands creates the commands for pins 0..maxPin, with led as the LED pin
func NewPinCommands(term *Terminal, driver GPIODriver, led, maxPin GPIOPin) *PinCommands {
	if maxPin > 63 {
		maxPin = 63
	}
	return &PinCommands{
		term:   term,
		driver: driver,
		led:    led,
		maxPin: maxPin,
	}
}

// Register binds the commands on the terminal
func (p *PinCommands) Register() error {
	if err := p.term.OnCommand("led", p.LED); err != nil {
		return err
	}
	return p.term.OnCommand("gpio", p.GPIO)
}

func (p *PinCommands) output(pin GPIOPin) error {
	if p.outputs&(1<<pin) != 0 {
		return nil
	}
	if err := p.driver.ConfigureOutput(pin); err != nil {
		return err
	}
	p.outputs |= 1 << pin
	return nil
}

func (p *PinCommands) set(pin GPIOPin, value bool) error {
	if err := p.output(pin); err != nil {
		return err
	}
	return p.driver.SetPin(pin, value)
}

// LED handles the led command
func (p *PinCommands) LED(args Args) error {
	var value bool
	switch lowerString(args.Bytes()) {
	case "":
		on, err := p.driver.GetPin(p.led)
		if err != nil {
			return err
		}
		p.term.Println("LED: ", onOff(on))
		return nil
	case "on":
		value = true
	case "off":
		value = false
	case "toggle":
		on, err := p.driver.GetPin(p.led)
		if err != nil {
			return err
		}
		value = !on
	default:
		return ErrUnrecognizedGPIOSelection
	}

	if err := p.set(p.led, value); err != nil {
		return err
	}
	p.term.Println("LED: ", onOff(value))
	return nil
}

// GPIO handles the gpio command
func (p *PinCommands) GPIO(args Args) error {
	fields := args.Fields(p.term.Delimiter())
	if len(fields) == 0 {
		return ErrEmptyValue
	}
	if len(fields) > 2 {
		return ErrUnrecognizedGPIOSelection
	}

	n, err := ParseInt(fields[0])
	if err != nil {
		return err
	}
	if n < 0 || GPIOPin(n) > p.maxPin {
		return ErrUnrecognizedGPIOSelection
	}
	pin := GPIOPin(n)

	if len(fields) == 1 {
		level, err := p.driver.GetPin(pin)
		if err != nil {
			return err
		}
		p.term.Println("GPIO ", itoa(n), ": ", level01(level))
		return nil
	}

	level, err := ParseInt(fields[1])
	if err != nil {
		return err
	}
	if level != 0 && level != 1 {
		return ErrUnrecognizedGPIOSelection
	}

	if err := p.set(pin, level == 1); err != nil {
		return err
	}
	p.term.Println("GPIO ", itoa(n), ": ", level01(level == 1))
	return nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func level01(high bool) string {
	if high {
		return "1"
	}
	return "0"
}

// lowerString returns b as a lowercase ASCII string
func lowerString(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = toLower(c)
	}
	return string(out)
}
