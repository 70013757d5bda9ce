package arch

import (
	"fmt"
	"io/ioutil"
	"os"

	"orec/types"

	"github.com/pelletier/go-toml"
)

// tomlTarget represents a full machine description as it is encoded in a
// target profile file.
type tomlTarget struct {
	WordBits int `toml:"word-bits"`

	Sections map[string]string `toml:"sections"`

	Registers []tomlRegister `toml:"registers"`

	Entry string `toml:"syscall-entry"`

	EntryInt uint64 `toml:"syscall-int"`

	Convention tomlConvention `toml:"convention"`

	Syscalls []tomlSyscall `toml:"syscalls"`
}

type tomlRegister struct {
	Alias string `toml:"alias"`
	Phys  string `toml:"phys"`
	Width int    `toml:"width"`
}

type tomlConvention struct {
	Number string   `toml:"number"`
	Args   []string `toml:"args"`
	Ret    string   `toml:"ret"`
}

type tomlSyscall struct {
	Name   string   `toml:"name"`
	Code   uint64   `toml:"code"`
	Params []string `toml:"params"`
	Labels []string `toml:"labels"`
}

// LoadTarget loads a machine description and syscall table from a TOML target
// profile.  Profiles let a build inject the whole description so sources need
// not carry directives.  Validation goes through the same builders as the
// directive path, so the two agree on what a well-formed target is.
func LoadTarget(path string) (*Description, *SyscallTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open target profile at `%s`: %s", path, err.Error())
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading target profile at `%s`: %s", path, err.Error())
	}

	tomlTgt := &tomlTarget{}
	if err := toml.Unmarshal(buff, tomlTgt); err != nil {
		return nil, nil, fmt.Errorf("error parsing target profile at `%s`: %s", path, err.Error())
	}

	db := NewDescriptionBuilder()
	if err := db.SetWordBits(tomlTgt.WordBits); err != nil {
		return nil, nil, err
	}

	for attr, target := range tomlTgt.Sections {
		if err := db.MapSection(attr, target); err != nil {
			return nil, nil, err
		}
	}

	for _, reg := range tomlTgt.Registers {
		if err := db.AddRegister(reg.Alias, reg.Phys, reg.Width); err != nil {
			return nil, nil, err
		}
	}

	desc, err := db.Build()
	if err != nil {
		return nil, nil, err
	}

	tb := NewTableBuilder(desc)
	if tomlTgt.Entry != "" {
		if err := tb.SetEntryMnemonic(tomlTgt.Entry); err != nil {
			return nil, nil, err
		}
	} else if tomlTgt.EntryInt != 0 {
		if err := tb.SetEntryInt(tomlTgt.EntryInt); err != nil {
			return nil, nil, err
		}
	}

	if err := tb.SetConvention(tomlTgt.Convention.Number, tomlTgt.Convention.Args, tomlTgt.Convention.Ret); err != nil {
		return nil, nil, err
	}

	for _, sc := range tomlTgt.Syscalls {
		params := make([]ParamSpec, len(sc.Params))
		for i, spec := range sc.Params {
			p, err := parseParamSpec(spec, desc)
			if err != nil {
				return nil, nil, fmt.Errorf("syscall `%s`: %s", sc.Name, err.Error())
			}

			if i < len(sc.Labels) {
				p.Label = sc.Labels[i]
			}

			params[i] = p
		}

		if err := tb.AddSyscall(sc.Name, sc.Code, params); err != nil {
			return nil, nil, err
		}
	}

	table, err := tb.Seal()
	if err != nil {
		return nil, nil, err
	}

	return desc, table, nil
}

// parseParamSpec parses a profile parameter spec: `ptr`, `word`, or a byte
// width.
func parseParamSpec(spec string, desc *Description) (ParamSpec, error) {
	switch spec {
	case "ptr":
		return ParamSpec{Kind: types.ParamPointer, Width: desc.WordWidth()}, nil
	case "word":
		return ParamSpec{Kind: types.ParamWord, Width: desc.WordWidth()}, nil
	default:
		var n int
		if _, err := fmt.Sscanf(spec, "%d", &n); err != nil {
			return ParamSpec{}, fmt.Errorf("malformed parameter spec `%s`", spec)
		}

		if !desc.SupportsWidth(types.Width(n)) {
			return ParamSpec{}, fmt.Errorf("unsupported parameter width %d", n)
		}

		return ParamSpec{Kind: types.ParamFixed, Width: types.Width(n)}, nil
	}
}
