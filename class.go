package i2cdecode

// Class selects the display row and color of a reading.
type Class int

const (
	ChipInfo Class = iota
	PICVoltage
	PICTemperature
	PICFirmware
	PICLumens
	PICFan
	PICBurstStops
	PICLED
	PICFlags
	PICBurstPWM
	PICBurstDelay
	BMSCommand
	BMSSubcommand
	BMSPercent
	BMSCellVoltage
	BMSBatVoltage
	BMSPackVoltage
	BMSCellCurrent
	BMSPower
	BMSByte
	BMSInternalTemp
	BMSSensorTemp
	BMSCellTemp
	BMSFETTemp
	USBRegister
	USBPDONumber
	HallFlux
	HallPadding
	USBPDOSink
	USBRDOStatus
	Timing
)

type ClassInfo struct {
	ID          string
	Description string
	Row         string
}

var classes = map[Class]ClassInfo{
	ChipInfo:        {"chip-info", "Chip Info", "chips"},
	PICVoltage:      {"pic_volt", "Voltage", "pic"},
	PICTemperature:  {"pic_temp", "Temperature", "pic"},
	PICFirmware:     {"pic_firm", "Firmware", "pic"},
	PICLumens:       {"pic_lumens", "Lumens", "pic"},
	PICFan:          {"pic_fan", "PWM fan", "pic"},
	PICBurstStops:   {"pic_burst_stops", "Burst(stops)", "pic"},
	PICLED:          {"pic_led", "LED", "pic"},
	PICFlags:        {"pic_flags", "Flags", "pic"},
	PICBurstPWM:     {"pic_burst_pwm", "Burst PWM", "pic"},
	PICBurstDelay:   {"pic_burst_delay", "Burst Delay", "pic"},
	BMSCommand:      {"bms_cmd", "BMS command", "bms"},
	BMSSubcommand:   {"bms_subcmd", "BMS subcommand", "bms"},
	BMSPercent:      {"bms_percent", "Battery percent", "bms"},
	BMSCellVoltage:  {"bms_cell_volt", "Cell voltage", "bms"},
	BMSBatVoltage:   {"bms_bat_volt", "BAT pin voltage", "bms"},
	BMSPackVoltage:  {"bms_pack_volt", "PACK voltage", "bms"},
	BMSCellCurrent:  {"bms_cell_curr", "Cell current", "bms"},
	BMSPower:        {"bms_power", "Power", "bms"},
	BMSByte:         {"bms_byte", "Byte number", "bms"},
	BMSInternalTemp: {"bms_int_temp", "Internal temperature", "bms"},
	BMSSensorTemp:   {"bms_ts_temp", "Sensor temperature", "bms"},
	BMSCellTemp:     {"bms_cell_temp", "Cell temperature", "bms"},
	BMSFETTemp:      {"bms_fet_temp", "FET temperature", "bms"},
	USBRegister:     {"usb_reg", "USB-PD register", "usb-pd"},
	USBPDONumber:    {"usb_pdo_num", "PDO number", "usb-pd"},
	HallFlux:        {"hall_mfd", "Magnetic flux density", "hall"},
	HallPadding:     {"hall_pad", "Padding", "hall"},
	USBPDOSink:      {"usb_pdo_snk", "PDO sink", "usb-pd"},
	USBRDOStatus:    {"usb_rdo", "RDO status", "usb-pd"},
	Timing:          {"debug", "Debug", "debug"},
}

// Rows lists the annotation rows in display order.
var Rows = []string{"chips", "pic", "bms", "usb-pd", "hall", "debug"}

func (c Class) Info() ClassInfo {
	if info, ok := classes[c]; ok {
		return info
	}
	return ClassInfo{ID: "unknown", Description: "Unknown", Row: "debug"}
}

func (c Class) String() string {
	return c.Info().ID
}

func (c Class) Row() string {
	return c.Info().Row
}

// Classes returns every class in id order.
func Classes() []Class {
	out := make([]Class, 0, len(classes))
	for c := ChipInfo; c <= Timing; c++ {
		out = append(out, c)
	}
	return out
}
