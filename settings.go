package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

// setting keys
const (
	sTicksPerSecond    = "ticksPerSecond"
	sLoopDelay         = "loopDelay"
	sLongPressTime     = "longPressTime"
	sDebounceTime      = "debounceTime"
	sInactivityTimeout = "inactivityTimeout"
	sFlashDivisor      = "flashDivisor"
	sFlashDivisorFast  = "flashDivisorFast"
	sIODriver          = "ioDriver"
	sDisplay           = "display"
	sI2CBus            = "i2cBus"
	sI2CDev            = "i2cDevice"
	sI2CSimulated      = "i2cSimulated"
	sDebugDump         = "debugDump"
	sBuzzerAudio       = "buzzerAudio"
	sBuzzerTone        = "buzzerTone"
	sLogFile           = "logFile"
	sLogMaxSize        = "logMaxSize"
	sLogMaxBackups     = "logMaxBackups"
	sLogStdout         = "logStdout"

	sAcceptBtn    = "acceptButton"
	sCancelBtn    = "cancelButton"
	sSetTimeBtn   = "setTimeButton"
	sSetAlarmBtn  = "setAlarmButton"
	sIncrementBtn = "incrementButton"
	sDecrementBtn = "decrementButton"
	sAlarmLed     = "alarmLed"
	sBuzzer       = "buzzer"
)

// display digits and their segment lines, A-G then the decimal point
var sDigitLines = []string{"digit0", "digit1", "digit2", "digit3"}
var sSegmentLines = []string{
	"segmentA", "segmentB", "segmentC", "segmentD",
	"segmentE", "segmentF", "segmentG", "segmentP",
}

// pinMap is one logical line: where it is and how it reads
type pinMap struct {
	port     uint8
	bit      uint8
	inverted bool
	key      string // simulator key, buttons only
}

type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sTicksPerSecond] = 1000
	s[sLoopDelay], _ = time.ParseDuration("10ms")
	s[sLongPressTime], _ = time.ParseDuration("3s")
	s[sDebounceTime], _ = time.ParseDuration("50ms")
	s[sInactivityTimeout], _ = time.ParseDuration("30s")
	s[sFlashDivisor] = 100
	s[sFlashDivisorFast] = 50
	s[sI2CBus] = byte(1)
	s[sI2CDev] = byte(0x70)
	s[sDisplay] = "gpio"
	s[sDebugDump] = false
	s[sBuzzerTone] = float64(2048)
	s[sLogFile] = "/var/log/alarmclock.log"
	s[sLogMaxSize] = 5
	s[sLogMaxBackups] = 3
	s[sLogStdout] = false

	// BCM numbering, buttons pull up so pressed reads low
	s[sAcceptBtn] = pinMap{bit: 25, inverted: true, key: "a"}
	s[sCancelBtn] = pinMap{bit: 24, inverted: true, key: "x"}
	s[sSetTimeBtn] = pinMap{bit: 23, inverted: true, key: "t"}
	s[sSetAlarmBtn] = pinMap{bit: 22, inverted: true, key: "l"}
	s[sIncrementBtn] = pinMap{bit: 27, inverted: true, key: "u"}
	s[sDecrementBtn] = pinMap{bit: 17, inverted: true, key: "d"}
	s[sAlarmLed] = pinMap{bit: 18}
	s[sBuzzer] = pinMap{bit: 12}

	segmentPins := []uint8{5, 6, 13, 19, 26, 16, 20, 21}
	for i, name := range sSegmentLines {
		s[name] = pinMap{bit: segmentPins[i]}
	}
	digitPins := []uint8{7, 8, 9, 10}
	for i, name := range sDigitLines {
		// digits sink current through a transistor, low is on
		s[name] = pinMap{bit: digitPins[i], inverted: true}
	}

	// off the pi everything is simulated
	simulated := runtime.GOARCH != "arm"
	s[sI2CSimulated] = simulated
	s[sBuzzerAudio] = simulated
	if simulated {
		s[sIODriver] = "keys"
		s[sDisplay] = "term"
	} else {
		s[sIODriver] = "rpio"
	}

	return configSettings{settings: s}
}

func pinMapFromJSON(data []byte, key string) (pinMap, error) {
	var pm pinMap
	obj, _, _, err := jsonparser.Get(data, key)
	if err != nil {
		return pm, err
	}
	port, err := jsonparser.GetInt(obj, "port")
	if err != nil && err != jsonparser.KeyPathNotFoundError {
		return pm, errors.Wrapf(err, "%s.port", key)
	}
	bit, err := jsonparser.GetInt(obj, "bit")
	if err != nil {
		return pm, errors.Wrapf(err, "%s.bit", key)
	}
	if port < 0 || port > 255 || bit < 0 || bit > 255 {
		return pm, errors.Errorf("%s: port %d bit %d out of range", key, port, bit)
	}
	pm.port = uint8(port)
	pm.bit = uint8(bit)
	if inv, err := jsonparser.GetBoolean(obj, "inverted"); err == nil {
		pm.inverted = inv
	}
	if k, err := jsonparser.GetString(obj, "key"); err == nil {
		pm.key = k
	}
	return pm, nil
}

func (s *configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			continue
		}

		var err error
		switch initVal.(type) {
		case uint8:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err != nil {
				// try "0x70" style strings
				valString, err2 := jsonparser.GetString(data, k)
				if err2 == nil {
					val, err = strconv.ParseInt(valString, 0, 64)
				}
			}
			if err == nil && (val < 0 || val > 255) {
				err = errors.Errorf("%s: %d does not fit in a byte", k, val)
			}
			if err == nil {
				s.settings[k] = byte(val)
			}
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(val)
			}
		case float64:
			var val float64
			val, err = jsonparser.GetFloat(data, k)
			if err == nil {
				s.settings[k] = val
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try true and false
				str, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(str) {
				case "true":
					bVal, err = true, nil
				case "false":
					bVal, err = false, nil
				}
			}
			if err == nil {
				s.settings[k] = bVal
			}
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var d time.Duration
				d, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = d
				}
			}
		case string:
			var str string
			str, err = jsonparser.GetString(data, k)
			if err == nil {
				s.settings[k] = str
			}
		case pinMap:
			var pm pinMap
			pm, err = pinMapFromJSON(data, k)
			if err == nil {
				s.settings[k] = pm
			}
		default:
			err = errors.Errorf("bad type: %T", initVal)
		}
		if err != nil {
			return errors.Wrapf(err, "setting %s", k)
		}
	}
	return nil
}

func initSettings(configFile string) (configSettings, error) {
	s := defaultSettings()
	if configFile == "" {
		return s, nil
	}

	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		return s, errors.Wrapf(err, "could not load conf file '%s'", configFile)
	}

	log.Printf("Reading configuration from '%s'", configFile)
	if err := s.settingsFromJSON(data); err != nil {
		return s, err
	}
	return s, nil
}

func parseFlags() string {
	configFile := flag.String("config", "/etc/default/alarmclock/alarmclock.conf", "config file path")
	flag.Parse()
	return *configFile
}

func (s *configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *configSettings) GetByte(key string) byte {
	switch v := s.settings[key].(type) {
	case byte:
		return v
	case int:
		return byte(v)
	default:
		return 0
	}
}

func (s *configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	case byte:
		return int(v)
	default:
		return 0
	}
}

func (s *configSettings) GetFloat(key string) float64 {
	switch v := s.settings[key].(type) {
	case float64:
		return v
	default:
		return 0
	}
}

func (s *configSettings) GetPinMap(key string) pinMap {
	switch v := s.settings[key].(type) {
	case pinMap:
		return v
	default:
		return pinMap{}
	}
}

func (s *configSettings) GetAllButtonNames() []string {
	return []string{sAcceptBtn, sCancelBtn, sSetTimeBtn, sSetAlarmBtn, sIncrementBtn, sDecrementBtn}
}

// ticksPerSecond never returns less than 1
func (s *configSettings) ticksPerSecond() int {
	tps := s.GetInt(sTicksPerSecond)
	if tps < 1 {
		return 1
	}
	return tps
}

// tickPeriod is the sleep between two ticks
func (s *configSettings) tickPeriod() time.Duration {
	return time.Second / time.Duration(s.ticksPerSecond())
}

// ticks converts a duration setting to a tick count
func (s *configSettings) ticks(key string) uint32 {
	d := s.GetDuration(key)
	if d <= 0 {
		return 0
	}
	return uint32(d * time.Duration(s.ticksPerSecond()) / time.Second)
}

func (s *configSettings) Dump() {
	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		log.Println(fmt.Sprintf("%s : %T: %+v", k, s.settings[k], s.settings[k]))
	}
}
