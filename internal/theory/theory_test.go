package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper building the theory of categories: one object type Object,
// one morphism type Hom with src = tgt = Object.
func makeCategoryTheory(t *testing.T) *DoubleTheory {
	t.Helper()

	th := New("category", KindDiscrete)
	types := th.TypeCategory()
	ob, err := types.AddObGenerator("Object")
	require.NoError(t, err)
	_, err = types.AddMorGenerator("Hom", ob, ob)
	require.NoError(t, err)
	require.NoError(t, th.BindObType("Object", BasicOb("Object")))
	require.NoError(t, th.BindMorType("Hom", BasicMor("Hom")))
	return th
}

// Test helper building a schema-like theory with two object types and a
// non-endo morphism type between them:
// Entity --Attr--> AttrType
func makeSchemaTheory(t *testing.T) *DoubleTheory {
	t.Helper()

	th := New("schema", KindDiscrete)
	types := th.TypeCategory()
	ent, err := types.AddObGenerator("Entity")
	require.NoError(t, err)
	at, err := types.AddObGenerator("AttrType")
	require.NoError(t, err)
	_, err = types.AddMorGenerator("Attr", ent, at)
	require.NoError(t, err)
	require.NoError(t, th.BindObType("Entity", BasicOb("Entity")))
	require.NoError(t, th.BindObType("AttrType", BasicOb("AttrType")))
	require.NoError(t, th.BindMorType("Attr", BasicMor("Attr")))
	return th
}

func TestBindObType_Rebind(t *testing.T) {
	th := makeCategoryTheory(t)

	err := th.BindObType("Object", BasicOb("Object"))
	require.Error(t, err)
	var te *Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, ErrCodeReboundName, te.Code)
}

func TestBindMorType_UnknownBasic(t *testing.T) {
	th := makeCategoryTheory(t)

	err := th.BindMorType("Ghost", BasicMor("Ghost"))
	require.Error(t, err)
	var te *Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, ErrCodeUnboundBasicType, te.Code)

	_, ok := th.MorTypeByName("Ghost")
	assert.False(t, ok, "failed binding must not register the name")
}

func TestSrcTgt_Basic(t *testing.T) {
	th := makeSchemaTheory(t)

	attr, ok := th.MorTypeByName("Attr")
	require.True(t, ok)

	assert.True(t, ObTypeEqual(BasicOb("Entity"), th.Src(attr)))
	assert.True(t, ObTypeEqual(BasicOb("AttrType"), th.Tgt(attr)))

	src, ok := th.SrcOfName("Attr")
	require.True(t, ok)
	assert.True(t, ObTypeEqual(BasicOb("Entity"), src))
}

func TestSrcTgt_HomAndModeApp(t *testing.T) {
	th := makeCategoryTheory(t)

	hom := HomMor{Base: BasicOb("Object")}
	assert.True(t, ObTypeEqual(BasicOb("Object"), th.Src(hom)))
	assert.True(t, ObTypeEqual(BasicOb("Object"), th.Tgt(hom)))

	neg := ModeAppMor{Modality: "Neg", Arg: BasicMor("Hom")}
	want := ModeAppOb{Modality: "Neg", Arg: BasicOb("Object")}
	assert.True(t, ObTypeEqual(want, th.Src(neg)))
	assert.True(t, ObTypeEqual(want, th.Tgt(neg)))
}

func TestComposeTypes_Endo(t *testing.T) {
	th := makeCategoryTheory(t)

	got, err := th.ComposeTypes(BasicMor("Hom"), BasicMor("Hom"))
	require.NoError(t, err)

	comp, ok := got.(CompositeMor)
	require.True(t, ok)
	assert.Len(t, comp.Parts, 2)
	assert.True(t, ObTypeEqual(BasicOb("Object"), th.Src(got)))
	assert.True(t, ObTypeEqual(BasicOb("Object"), th.Tgt(got)))
}

func TestComposeTypes_Mismatch(t *testing.T) {
	th := makeSchemaTheory(t)

	// Attr;Attr is undefined: tgt(Attr) = AttrType, src(Attr) = Entity
	_, err := th.ComposeTypes(BasicMor("Attr"), BasicMor("Attr"))
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))

	var te *Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "AttrType", te.Expected)
	assert.Equal(t, "Entity", te.Found)
}

func TestComposeTypes_Flattens(t *testing.T) {
	th := makeCategoryTheory(t)

	two, err := th.ComposeTypes(BasicMor("Hom"), BasicMor("Hom"))
	require.NoError(t, err)
	three, err := th.ComposeTypes(two, BasicMor("Hom"))
	require.NoError(t, err)

	comp, ok := three.(CompositeMor)
	require.True(t, ok)
	assert.Len(t, comp.Parts, 3, "nested composites flatten")
}

func TestOperations(t *testing.T) {
	th := makeSchemaTheory(t)

	op := ObOp{Name: "tabulate", Arg: BasicOb("Entity"), Result: BasicOb("AttrType")}
	require.NoError(t, th.AddObOp(op))

	got, err := th.ApplyObOp("tabulate", BasicOb("Entity"))
	require.NoError(t, err)
	assert.True(t, ObTypeEqual(BasicOb("AttrType"), got))

	_, err = th.ApplyObOp("tabulate", BasicOb("AttrType"))
	require.Error(t, err)
	assert.True(t, IsOperationTypeError(err))

	_, err = th.ApplyObOp("missing", BasicOb("Entity"))
	require.Error(t, err)
	assert.False(t, IsOperationTypeError(err))

	err = th.AddObOp(op)
	require.Error(t, err)
	var te *Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, ErrCodeDuplicateOperation, te.Code)
}

func TestMorOperations(t *testing.T) {
	th := makeCategoryTheory(t)

	op := MorOp{
		Name:   "negate",
		Arg:    BasicMor("Hom"),
		Result: ModeAppMor{Modality: "Neg", Arg: BasicMor("Hom")},
	}
	require.NoError(t, th.AddMorOp(op))

	got, err := th.ApplyMorOp("negate", BasicMor("Hom"))
	require.NoError(t, err)
	assert.True(t, MorTypeEqual(op.Result, got))

	_, err = th.ApplyMorOp("negate", HomMor{Base: BasicOb("Object")})
	assert.True(t, IsOperationTypeError(err))
}

func TestTypeBound(t *testing.T) {
	th := makeCategoryTheory(t)

	assert.True(t, th.ObTypeBound(BasicOb("Object")))
	assert.False(t, th.ObTypeBound(BasicOb("Ghost")))
	assert.True(t, th.MorTypeBound(BasicMor("Hom")))
	assert.False(t, th.MorTypeBound(HomMor{Base: BasicOb("Object")}))
}

func TestTypeNames_BindingOrder(t *testing.T) {
	th := makeSchemaTheory(t)

	assert.Equal(t, []string{"Entity", "AttrType"}, th.ObTypeNames())
	assert.Equal(t, []string{"Attr"}, th.MorTypeNames())
}
