package common

// OreVersion is the current Ore compiler version as a string.
const OreVersion string = "0.1.0"

// OreFileExt is the file extension for an Ore source file.
const OreFileExt string = ".ore"

// OreOutputExt is the file extension for generated assembly output.
const OreOutputExt string = ".s"

// Names of the well-known section attributes.  The registry may map any
// attribute name, but these three carry fixed roles: `init` holds generated
// code, `static` holds storage slots, and `const` holds literal data.
const (
	AttrInit   = "init"
	AttrStatic = "static"
	AttrConst  = "const"
)
