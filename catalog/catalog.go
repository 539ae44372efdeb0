// Package catalog loads the YAML device-description records (spec §3.3,
// §6.3) that map a 12-bit STM32 product ID to its flash geometry and the
// addresses of its UID, flash-size and bootloader-ID registers.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AddressRange is an inclusive [Min, Max] memory range, used for the
// catalog's informational Bootloader.RAM / Bootloader.SYS fields.
type AddressRange struct {
	Min uint32 `yaml:"min"`
	Max uint32 `yaml:"max"`
}

type addressField struct {
	Address *uint32 `yaml:"address"`
}

// Record is one device's description, matching the upstream schema
// (stmloader/schema.py) field for field.
type Record struct {
	DeviceID    uint32 `yaml:"DeviceID"`
	Name        string `yaml:"Name"`
	Series      string `yaml:"Series"`
	CPU         string `yaml:"CPU"`
	Description string `yaml:"Description"`

	Flash struct {
		PageSize uint32 `yaml:"PageSize"`
	} `yaml:"Flash"`

	UniversalID addressField `yaml:"UniversalID"`
	FlashSize   addressField `yaml:"FlashSize"`

	Bootloader struct {
		ID  addressField  `yaml:"ID"`
		RAM *AddressRange `yaml:"RAM"`
		SYS *AddressRange `yaml:"SYS"`
	} `yaml:"Bootloader"`
}

// PageSize returns the device's flash erase page size in bytes.
func (r *Record) PageSize() uint32 { return r.Flash.PageSize }

// UIDAddress returns the memory address of the 96-bit unique ID, if known.
func (r *Record) UIDAddress() (uint32, bool) {
	if r.UniversalID.Address == nil {
		return 0, false
	}
	return *r.UniversalID.Address, true
}

// FlashSizeAddress returns the memory address of the 16-bit flash-size
// register, if known.
func (r *Record) FlashSizeAddress() (uint32, bool) {
	if r.FlashSize.Address == nil {
		return 0, false
	}
	return *r.FlashSize.Address, true
}

// BootloaderIDAddress returns the memory address of the 1-byte bootloader
// ID, if known. Per the upstream schema's ambiguity (spec §9 Open
// Questions), this is treated as an address to be READ_MEMORY'd, not a
// literal ID value.
func (r *Record) BootloaderIDAddress() (uint32, bool) {
	if r.Bootloader.ID.Address == nil {
		return 0, false
	}
	return *r.Bootloader.ID.Address, true
}

// RAMRange returns the bootloader's working-RAM address range, if the
// catalog entry carries one. Informational only; no operation reads it.
func (r *Record) RAMRange() (AddressRange, bool) {
	if r.Bootloader.RAM == nil {
		return AddressRange{}, false
	}
	return *r.Bootloader.RAM, true
}

// SysRange returns the system-memory boot region's address range, if the
// catalog entry carries one. Informational only; no operation reads it.
func (r *Record) SysRange() (AddressRange, bool) {
	if r.Bootloader.SYS == nil {
		return AddressRange{}, false
	}
	return *r.Bootloader.SYS, true
}

// Catalog indexes device Records by DeviceID.
type Catalog struct {
	records map[uint32]*Record
}

// Get looks up a device record by its 12-bit product ID. A missing entry is
// not an error: callers fall back to the "address unknown" sentinels.
func (c *Catalog) Get(deviceID uint32) (*Record, bool) {
	if c == nil {
		return nil, false
	}
	rec, ok := c.records[deviceID]
	return rec, ok
}

// Len returns the number of loaded records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Load globs dir for "stm32_*.yml" files and parses each as a Record,
// validating the presence of the required scalar fields (matching
// schema.py's template). A missing directory yields an empty, non-nil
// catalog rather than an error, since an absent catalog simply means every
// device is unknown (spec §4.4).
func Load(dir string) (*Catalog, error) {
	cat := &Catalog{records: map[uint32]*Record{}}
	matches, err := filepath.Glob(filepath.Join(dir, "stm32_*.yml"))
	if err != nil {
		return nil, err
	}
	for _, path := range matches {
		rec, err := loadRecord(path)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", path, err)
		}
		cat.records[rec.DeviceID] = rec
	}
	return cat, nil
}

func loadRecord(path string) (*Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := yaml.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	if err := validate(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func validate(rec *Record) error {
	if rec.DeviceID == 0 {
		return fmt.Errorf("missing or zero DeviceID")
	}
	if rec.Name == "" {
		return fmt.Errorf("missing Name")
	}
	if rec.Series == "" {
		return fmt.Errorf("missing Series")
	}
	if rec.CPU == "" {
		return fmt.Errorf("missing CPU")
	}
	if rec.Description == "" {
		return fmt.Errorf("missing Description")
	}
	return nil
}
