package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRecord = `
DeviceID: 0x410
Name: STM32F1xx Medium-density
Series: STM32F1
CPU: Cortex-M3
Description: Medium-density performance line
Flash:
  PageSize: 1024
UniversalID:
  address: 0x1FFFF7E8
FlashSize:
  address: 0x1FFFF7E0
Bootloader:
  ID:
    address: 0x1FFFF7FE
  RAM:
    min: 0x20000200
    max: 0x20002000
  SYS:
    min: 0x1FFFF000
    max: 0x1FFFF800
`

const missingNameRecord = `
DeviceID: 0x411
Series: STM32F2
CPU: Cortex-M3
Description: incomplete record
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadParsesValidRecord(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stm32_f1xx_md.yml", validRecord)

	cat, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())

	rec, ok := cat.Get(0x410)
	require.True(t, ok)
	assert.Equal(t, "STM32F1xx Medium-density", rec.Name)
	assert.Equal(t, uint32(1024), rec.PageSize())

	addr, ok := rec.UIDAddress()
	require.True(t, ok)
	assert.Equal(t, uint32(0x1FFFF7E8), addr)

	addr, ok = rec.FlashSizeAddress()
	require.True(t, ok)
	assert.Equal(t, uint32(0x1FFFF7E0), addr)

	addr, ok = rec.BootloaderIDAddress()
	require.True(t, ok)
	assert.Equal(t, uint32(0x1FFFF7FE), addr)

	ram, ok := rec.RAMRange()
	require.True(t, ok)
	assert.Equal(t, AddressRange{Min: 0x20000200, Max: 0x20002000}, ram)
}

func TestLoadRejectsMissingRequiredField(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stm32_bad.yml", missingNameRecord)

	_, err := Load(dir)
	require.Error(t, err)
}

func TestLoadOnMissingDirectoryYieldsEmptyCatalog(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, 0, cat.Len())

	_, ok := cat.Get(0x410)
	assert.False(t, ok)
}

func TestRecordMissingOptionalAddressesReportUnknown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stm32_minimal.yml", `
DeviceID: 0x412
Name: Minimal
Series: STM32F0
CPU: Cortex-M0
Description: no optional addresses
`)
	cat, err := Load(dir)
	require.NoError(t, err)
	rec, ok := cat.Get(0x412)
	require.True(t, ok)

	_, ok = rec.UIDAddress()
	assert.False(t, ok)
	_, ok = rec.FlashSizeAddress()
	assert.False(t, ok)
	_, ok = rec.BootloaderIDAddress()
	assert.False(t, ok)
	_, ok = rec.RAMRange()
	assert.False(t, ok)
}

func TestNilCatalogIsSafeToQuery(t *testing.T) {
	var cat *Catalog
	assert.Equal(t, 0, cat.Len())
	_, ok := cat.Get(0x410)
	assert.False(t, ok)
}
