package ldscript

import (
	"strings"
	"testing"
)

// stm32Script is a trimmed-down STM32CubeIDE-style linker script with
// the constructs the parser has to survive in the wild.
const stm32Script = `
/* Entry Point */
ENTRY(Reset_Handler)

/* Highest address of the user mode stack */
_estack = ORIGIN(RAM) + LENGTH(RAM);

_Min_Heap_Size = 0x200;
_Min_Stack_Size = 0x400;

MEMORY
{
  RAM (xrw)  : ORIGIN = 0x20000000, LENGTH = 128K
  FLASH (rx) : ORIGIN = 0x8000000, LENGTH = 512K
}

SECTIONS
{
  .isr_vector :
  {
    . = ALIGN(4);
    KEEP(*(.isr_vector))
    . = ALIGN(4);
  } >FLASH

  .text :
  {
    . = ALIGN(4);
    *(.text)
    *(.text*)
    KEEP (*(.init))
    KEEP (*(.fini))
    . = ALIGN(4);
    _etext = .;
  } >FLASH

  _sidata = LOADADDR(.data);

  .data :
  {
    . = ALIGN(4);
    _sdata = .;
    *(.data)
    *(.data*)
    . = ALIGN(4);
    _edata = .;
  } >RAM AT> FLASH

  .bss :
  {
    _sbss = .;
    __bss_start__ = _sbss;
    *(.bss)
    *(.bss*)
    *(COMMON)
    . = ALIGN(4);
    _ebss = .;
  } >RAM

  /DISCARD/ :
  {
    libc.a ( * )
    libm.a ( * )
  }

  .ARM.attributes 0 : { *(.ARM.attributes) }
}
`

func TestParse(t *testing.T) {
	t.Run("stm32_script", func(t *testing.T) {
		script, err := Parse(stm32Script)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		wantRegions := []MemoryRegion{
			{Name: "RAM", Attrs: "xrw", Origin: 0x20000000, Length: 128 * 1024},
			{Name: "FLASH", Attrs: "rx", Origin: 0x8000000, Length: 512 * 1024},
		}
		if len(script.Regions) != len(wantRegions) {
			t.Fatalf("got %d regions, want %d", len(script.Regions), len(wantRegions))
		}
		for i, want := range wantRegions {
			if script.Regions[i] != want {
				t.Errorf("region %d = %+v, want %+v", i, script.Regions[i], want)
			}
		}

		wantOutputs := []OutputSection{
			{Name: ".isr_vector", Region: "FLASH"},
			{Name: ".text", Region: "FLASH"},
			{Name: ".data", Region: "RAM", LoadRegion: "FLASH"},
			{Name: ".bss", Region: "RAM"},
			{Name: "/DISCARD/"},
			{Name: ".ARM.attributes"},
		}
		if len(script.Outputs) != len(wantOutputs) {
			t.Fatalf("got %d outputs %+v, want %d", len(script.Outputs), script.Outputs, len(wantOutputs))
		}
		for i, want := range wantOutputs {
			if script.Outputs[i] != want {
				t.Errorf("output %d = %+v, want %+v", i, script.Outputs[i], want)
			}
		}
	})

	t.Run("expressions", func(t *testing.T) {
		script, err := Parse(`MEMORY
		{
			BOOT (rx)  : ORIGIN = 0x08000000, LENGTH = 32K
			FLASH (rx) : ORIGIN = ORIGIN(BOOT) + LENGTH(BOOT), LENGTH = 1024K - 32K
			HALF (rx)  : ORIGIN = 0x10000000, LENGTH = 64K / 2
			QUAD (rx)  : ORIGIN = 0, LENGTH = 4 * 1M
			PREC (rx)  : ORIGIN = 0, LENGTH = 1M + 512K * 2
			PAREN (rx) : ORIGIN = 0, LENGTH = (1M + 1M) * 2
		}`)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		wantLengths := map[string]uint64{
			"BOOT":  32 * 1024,
			"FLASH": 992 * 1024,
			"HALF":  32 * 1024,
			"QUAD":  4 * 1024 * 1024,
			"PREC":  2 * 1024 * 1024,
			"PAREN": 4 * 1024 * 1024,
		}
		for name, want := range wantLengths {
			r, ok := script.Region(name)
			if !ok {
				t.Fatalf("region %s not found", name)
			}
			if r.Length != want {
				t.Errorf("%s length = %d, want %d", name, r.Length, want)
			}
		}

		if r, _ := script.Region("FLASH"); r.Origin != 0x08008000 {
			t.Errorf("FLASH origin = %#x, want 0x08008000", r.Origin)
		}
	})

	t.Run("org_len_spellings", func(t *testing.T) {
		script, err := Parse(`MEMORY
		{
			rom (rx) : org = 0x0, len = 32K
			ram (rw) : o = 0x20000000, l = 8K
		}`)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if r, _ := script.Region("rom"); r.Length != 32*1024 {
			t.Errorf("rom length = %d, want %d", r.Length, 32*1024)
		}
		if r, _ := script.Region("ram"); r.Origin != 0x20000000 || r.Length != 8*1024 {
			t.Errorf("ram = %+v", r)
		}
	})

	t.Run("no_memory_block", func(t *testing.T) {
		script, err := Parse(`SECTIONS { .text : { *(.text) } }`)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(script.Regions) != 0 {
			t.Errorf("got %d regions, want 0", len(script.Regions))
		}
		if len(script.Outputs) != 1 || script.Outputs[0].Name != ".text" {
			t.Errorf("outputs = %+v", script.Outputs)
		}
	})

	t.Run("empty_script", func(t *testing.T) {
		script, err := Parse("")
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(script.Regions) != 0 || len(script.Outputs) != 0 {
			t.Errorf("got %+v, want empty script", script)
		}
	})

	t.Run("commands_skipped", func(t *testing.T) {
		script, err := Parse(`
			OUTPUT_FORMAT("elf32-littlearm", "elf32-littlearm", "elf32-littlearm")
			OUTPUT_ARCH(arm)
			SEARCH_DIR(.)
			GROUP(-lgcc -lc)
			MEMORY
			{
				FLASH (rx) : ORIGIN = 0x00000000, LENGTH = 64K
			}
			SECTIONS
			{
				PROVIDE(__stack = 0x20001000);
				.text : { *(.text) } > FLASH
			}`)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(script.Regions) != 1 {
			t.Fatalf("got %d regions, want 1", len(script.Regions))
		}
		if len(script.Outputs) != 1 || script.Outputs[0].Region != "FLASH" {
			t.Errorf("outputs = %+v", script.Outputs)
		}
	})

	t.Run("phdr_and_fill", func(t *testing.T) {
		script, err := Parse(`
			MEMORY { rom (rx) : ORIGIN = 0, LENGTH = 1M }
			SECTIONS
			{
				.text : { *(.text) } > rom : text = 0xFF
				.rodata : { *(.rodata) } > rom
			}`)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		want := []OutputSection{
			{Name: ".text", Region: "rom"},
			{Name: ".rodata", Region: "rom"},
		}
		if len(script.Outputs) != len(want) {
			t.Fatalf("got %d outputs %+v, want %d", len(script.Outputs), script.Outputs, len(want))
		}
		for i, w := range want {
			if script.Outputs[i] != w {
				t.Errorf("output %d = %+v, want %+v", i, script.Outputs[i], w)
			}
		}
	})

	t.Run("header_decorations", func(t *testing.T) {
		script, err := Parse(`
			MEMORY { ram (rwx) : ORIGIN = 0x20000000, LENGTH = 64K }
			SECTIONS
			{
				.noinit (NOLOAD) : { *(.noinit) } > ram
				.vectors 0x20000000 : AT(0x0) { *(.vectors) } > ram
			}`)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		want := []OutputSection{
			{Name: ".noinit", Region: "ram"},
			{Name: ".vectors", Region: "ram"},
		}
		if len(script.Outputs) != len(want) {
			t.Fatalf("got %d outputs %+v, want %d", len(script.Outputs), script.Outputs, len(want))
		}
		for i, w := range want {
			if script.Outputs[i] != w {
				t.Errorf("output %d = %+v, want %+v", i, script.Outputs[i], w)
			}
		}
	})

	t.Run("quoted_section_name", func(t *testing.T) {
		script, err := Parse(`
			MEMORY { rom (rx) : ORIGIN = 0, LENGTH = 1M }
			SECTIONS
			{
				"my section" : { *(.custom) } > rom
			}`)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(script.Outputs) != 1 {
			t.Fatalf("got %d outputs %+v, want 1", len(script.Outputs), script.Outputs)
		}
		want := OutputSection{Name: "my section", Region: "rom"}
		if script.Outputs[0] != want {
			t.Errorf("output = %+v, want %+v", script.Outputs[0], want)
		}
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name, source, wantErr string
	}{
		{"unterminated_memory", "MEMORY {", "unterminated MEMORY"},
		{"unterminated_sections", "SECTIONS {", "unterminated SECTIONS"},
		{"bad_region_field", "MEMORY { FLASH : SIZE = 5 }", "expected ORIGIN"},
		{"missing_comma", "MEMORY { FLASH : ORIGIN = 0x0 }", "expected ','"},
		{"bad_expression", "MEMORY { FLASH : ORIGIN = , LENGTH = 1 }", "in expression"},
		{"invalid_number", "MEMORY { FLASH : ORIGIN = 0x, LENGTH = 1 }", "invalid number"},
		{"division_by_zero", "MEMORY { FLASH : ORIGIN = 0, LENGTH = 1M / 0 }", "division by zero"},
		{"undeclared_reference", "MEMORY { FLASH : ORIGIN = ORIGIN(ROM), LENGTH = 1 }", "undeclared region"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.source)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q missing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRegionLookup(t *testing.T) {
	script := &Script{Regions: []MemoryRegion{
		{Name: "FLASH", Length: 512 * 1024},
		{Name: "RAM", Length: 128 * 1024},
	}}

	r, ok := script.Region("RAM")
	if !ok || r.Length != 128*1024 {
		t.Errorf("Region(RAM) = %+v, %v", r, ok)
	}
	if _, ok := script.Region("ROM"); ok {
		t.Error("Region(ROM) should not be found")
	}
}
