package parse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/functionalscript/nanvm-sub000/pkg/heap"
	"github.com/functionalscript/nanvm-sub000/pkg/ioabs"
	"github.com/functionalscript/nanvm-sub000/pkg/module"
	"github.com/functionalscript/nanvm-sub000/pkg/nanvmerr"
	"github.com/functionalscript/nanvm-sub000/pkg/value"
)

func mustParse(t *testing.T, text string) Result {
	t.Helper()
	res, err := ParseString(ioabs.NewVirtual(), text)
	require.NoError(t, err)
	return res
}

func TestParsePlainJSONObject(t *testing.T) {
	res := mustParse(t, `{"key":[true,false,null]}`)
	require.Equal(t, Json, res.Format)

	obj, ok := res.Value.TryObject()
	require.True(t, ok)
	entries := obj.Get().Entries
	require.Len(t, entries, 1)
	require.Equal(t, "key", entries[0].Key)

	arr, ok := entries[0].Value.TryArray()
	require.True(t, ok)
	items := arr.Get().Items
	require.Len(t, items, 3)
	b0, _ := items[0].TryBool()
	require.True(t, b0)
	b1, _ := items[1].TryBool()
	require.False(t, b1)
	require.Equal(t, value.KindNull, items[2].GetType())
}

func TestTrailingCommaAccepted(t *testing.T) {
	res := mustParse(t, `[1,2,]`)
	arr, ok := res.Value.TryArray()
	require.True(t, ok)
	require.Len(t, arr.Get().Items, 2)

	res = mustParse(t, `{"a":1,}`)
	obj, ok := res.Value.TryObject()
	require.True(t, ok)
	require.Len(t, obj.Get().Entries, 1)
}

func TestEmptyInputIsUnexpectedEnd(t *testing.T) {
	_, err := ParseString(ioabs.NewVirtual(), "")
	require.True(t, nanvmerr.Is(err, nanvmerr.UnexpectedEnd))
}

func TestSingleArrayEndIsUnexpectedToken(t *testing.T) {
	_, err := ParseString(ioabs.NewVirtual(), "]")
	require.True(t, nanvmerr.Is(err, nanvmerr.UnexpectedToken))
}

func TestConstBinding(t *testing.T) {
	res := mustParse(t, "const x = 3;\nx\n")
	n, ok := res.Value.TryNumber()
	require.True(t, ok)
	require.Equal(t, 3.0, n)
	require.Equal(t, Djs, res.Format)
}

func TestConstBindingNewlineTerminator(t *testing.T) {
	res := mustParse(t, "const x = 3\nx\n")
	n, ok := res.Value.TryNumber()
	require.True(t, ok)
	require.Equal(t, 3.0, n)
}

func TestDjsBareObjectKey(t *testing.T) {
	res := mustParse(t, "const x = {a:1};\nx\n")
	obj, ok := res.Value.TryObject()
	require.True(t, ok)
	require.Equal(t, "a", obj.Get().Entries[0].Key)
}

func TestCjsModuleExportsAndRequire(t *testing.T) {
	io := ioabs.NewVirtual()
	io.Files["/other.djs"] = `module.exports = 3;`
	io.Files["/main.djs"] = `module.exports = [require("./other.djs")];`

	res, err := Parse(io, "/main.djs", module.New())
	require.NoError(t, err)
	require.Equal(t, Cjs, res.Format)

	arr, ok := res.Value.TryArray()
	require.True(t, ok)
	require.Len(t, arr.Get().Items, 1)
	n, ok := arr.Get().Items[0].TryNumber()
	require.True(t, ok)
	require.Equal(t, 3.0, n)
}

func TestMissingRequireTargetIsCannotReadFile(t *testing.T) {
	io := ioabs.NewVirtual()
	io.Files["/main.djs"] = `module.exports = require("./missing.djs");`

	_, err := Parse(io, "/main.djs", module.New())
	require.True(t, nanvmerr.Is(err, nanvmerr.CannotReadFile))
}

func TestMissingTopLevelFileIsCannotReadFile(t *testing.T) {
	io := ioabs.NewVirtual()
	_, err := Parse(io, "/missing.djs", module.New())
	require.True(t, nanvmerr.Is(err, nanvmerr.CannotReadFile))
}

func TestParseWithOptionsUsesArenaAllocator(t *testing.T) {
	arena := heap.NewArena()
	io := ioabs.NewVirtual()
	io.Files["/main.djs"] = `module.exports = {a:[1,"x"]};`

	res, err := ParseWithOptions(io, "/main.djs", module.New(), 0, value.NewArenaAllocator(arena))
	require.NoError(t, err)
	defer res.Value.Release()

	require.True(t, arena.LiveBlocks() > 0, "object/array/string payloads must allocate through the given arena")
}

func TestParseWithOptionsHonorsMaxImportDepth(t *testing.T) {
	io := ioabs.NewVirtual()
	io.Files["/a.djs"] = `module.exports = require("./b.djs");`
	io.Files["/b.djs"] = `module.exports = require("./c.djs");`
	io.Files["/c.djs"] = `module.exports = 1;`

	_, err := ParseWithOptions(io, "/a.djs", module.New(), 1, value.GlobalAllocator)
	require.True(t, nanvmerr.Is(err, nanvmerr.CannotReadFile))
}

func TestCircularDependency(t *testing.T) {
	io := ioabs.NewVirtual()
	io.Files["/main.djs"] = `module.exports = require("./a.djs");`
	io.Files["/a.djs"] = `module.exports = require("./main.djs");`

	_, err := Parse(io, "/main.djs", module.New())
	require.True(t, nanvmerr.Is(err, nanvmerr.CircularDependency))
}

func TestMjsImportExportDefault(t *testing.T) {
	io := ioabs.NewVirtual()
	io.Files["/other.mjs"] = `export default 42;`
	io.Files["/main.mjs"] = "import x from \"./other.mjs\";\nexport default x;\n"

	res, err := Parse(io, "/main.mjs", module.New())
	require.NoError(t, err)
	require.Equal(t, Mjs, res.Format)
	n, ok := res.Value.TryNumber()
	require.True(t, ok)
	require.Equal(t, 42.0, n)
}

func TestMixingCjsAndMjsIsRejected(t *testing.T) {
	io := ioabs.NewVirtual()
	io.Files["/main.djs"] = "module.exports = 1;\nexport default 2;\n"
	_, err := Parse(io, "/main.djs", module.New())
	require.Error(t, err)
}

func TestBigIntLiteral(t *testing.T) {
	res := mustParse(t, "123n")
	big, ok := res.Value.TryBigInt()
	require.True(t, ok)
	require.Equal(t, "123", big.Get().String())
}

func TestModuleCacheSharesSameHandle(t *testing.T) {
	io := ioabs.NewVirtual()
	io.Files["/shared.djs"] = `module.exports = {v:1};`
	io.Files["/main.djs"] = `module.exports = [require("./shared.djs"), require("./shared.djs")];`

	res, err := Parse(io, "/main.djs", module.New())
	require.NoError(t, err)
	arr, _ := res.Value.TryArray()
	require.True(t, arr.Get().Items[0].Equal(arr.Get().Items[1]))
}
