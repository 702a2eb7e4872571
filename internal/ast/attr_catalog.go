package ast

import (
	"slices"
	"strings"
)

// Attribute is a parsed {attribute 'name' := 'value'} pragma.
type Attribute struct {
	Name  string
	Value string
}

// AttrTargetMask describes which nodes an attribute pragma is meaningful on.
type AttrTargetMask uint8

const (
	AttrTargetNone AttrTargetMask = 0
	AttrTargetPOU  AttrTargetMask = 1 << iota // function blocks, programs, functions, methods, properties
	AttrTargetType                            // TYPE entries
	AttrTargetVar                             // declarations
	AttrTargetGVL                             // global variable lists
)

// AttrFlag captures special handling rules.
type AttrFlag uint8

const (
	AttrFlagNone AttrFlag = 0

	// AttrFlagValue marks attributes that carry a value ('pack_mode' := '1').
	AttrFlagValue AttrFlag = 1 << iota

	// AttrFlagDeprecated marks attributes TwinCAT still accepts but no longer documents.
	AttrFlagDeprecated
)

// AttrSpec describes a known TwinCAT attribute pragma.
type AttrSpec struct {
	Name    string
	Targets AttrTargetMask
	Flags   AttrFlag
}

// Allows reports whether the attribute applies to the target.
func (spec AttrSpec) Allows(target AttrTargetMask) bool {
	return spec.Targets&target != 0
}

// HasFlag reports whether the spec contains the given flag.
func (spec AttrSpec) HasFlag(flag AttrFlag) bool {
	return spec.Flags&flag != 0
}

var attrRegistry = map[string]AttrSpec{
	"call_after_init":             {Name: "call_after_init", Targets: AttrTargetPOU},
	"call_after_global_init_slot": {Name: "call_after_global_init_slot", Targets: AttrTargetPOU, Flags: AttrFlagValue},
	"displaymode":                 {Name: "displaymode", Targets: AttrTargetVar | AttrTargetType, Flags: AttrFlagValue},
	"enable_dynamic_creation":     {Name: "enable_dynamic_creation", Targets: AttrTargetPOU},
	"global_init_slot":            {Name: "global_init_slot", Targets: AttrTargetGVL | AttrTargetPOU, Flags: AttrFlagValue},
	"hide":                        {Name: "hide", Targets: AttrTargetPOU | AttrTargetVar | AttrTargetType | AttrTargetGVL},
	"hide_all_locals":             {Name: "hide_all_locals", Targets: AttrTargetPOU},
	"init_on_onlchange":           {Name: "init_on_onlchange", Targets: AttrTargetVar | AttrTargetGVL},
	"instance-path":               {Name: "instance-path", Targets: AttrTargetVar},
	"linkalways":                  {Name: "linkalways", Targets: AttrTargetPOU | AttrTargetGVL},
	"monitoring":                  {Name: "monitoring", Targets: AttrTargetPOU, Flags: AttrFlagValue},
	"no_check":                    {Name: "no_check", Targets: AttrTargetPOU},
	"no_copy":                     {Name: "no_copy", Targets: AttrTargetVar},
	"no_explicit_call":            {Name: "no_explicit_call", Targets: AttrTargetPOU},
	"noinit":                      {Name: "noinit", Targets: AttrTargetVar},
	"obsolete":                    {Name: "obsolete", Targets: AttrTargetPOU | AttrTargetType | AttrTargetVar, Flags: AttrFlagValue},
	"pack_mode":                   {Name: "pack_mode", Targets: AttrTargetType | AttrTargetGVL, Flags: AttrFlagValue},
	"qualified_only":              {Name: "qualified_only", Targets: AttrTargetGVL | AttrTargetType},
	"reflection":                  {Name: "reflection", Targets: AttrTargetPOU},
	"strict":                      {Name: "strict", Targets: AttrTargetType},
	"subsequent":                  {Name: "subsequent", Targets: AttrTargetVar},
	"tcinitsymbol":                {Name: "TcInitSymbol", Targets: AttrTargetVar, Flags: AttrFlagDeprecated},
	"tclinkto":                    {Name: "TcLinkTo", Targets: AttrTargetVar, Flags: AttrFlagValue},
	"tcnouserlink":                {Name: "TcNoUserLink", Targets: AttrTargetVar, Flags: AttrFlagDeprecated},
	"tcrpcenable":                 {Name: "TcRpcEnable", Targets: AttrTargetPOU},
	"to_string":                   {Name: "to_string", Targets: AttrTargetType},
	"opc.ua.da":                   {Name: "OPC.UA.DA", Targets: AttrTargetVar | AttrTargetType, Flags: AttrFlagValue},
}

// LookupAttr returns metadata for the given attribute name (case-insensitive).
func LookupAttr(name string) (AttrSpec, bool) {
	if name == "" {
		return AttrSpec{}, false
	}
	spec, ok := attrRegistry[strings.ToLower(name)]
	return spec, ok
}

// Known reports whether the attribute is in the catalog.
func (a Attribute) Known() bool {
	_, ok := LookupAttr(a.Name)
	return ok
}

// AttrSpecs returns a stable slice of all registered attribute specifications sorted by name.
func AttrSpecs() []AttrSpec {
	names := make([]string, 0, len(attrRegistry))
	for name := range attrRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	result := make([]AttrSpec, 0, len(names))
	for _, name := range names {
		result = append(result, attrRegistry[name])
	}
	return result
}
