// Package value implements the tagged-union value universe (spec §3, §4.1):
// a closed set of scalar and array types identified by a stable TypeID,
// plus the trait table (name, underlying id for role types, element size)
// that the crate decoder and attribute machinery dispatch on.
package value

// TypeID is the 32-bit tag identifying a concrete value type. It matches
// the type_id field packed into a crate ValueRep (bits 55-48, §6).
type TypeID uint32

const Invalid TypeID = 0

const (
	Bool TypeID = iota + 1
	UChar
	Int
	UInt
	Int64
	UInt64

	HalfID
	Float
	Double

	Half2ID
	Float2ID
	Double2ID
	Half3ID
	Float3ID
	Double3ID
	Half4ID
	Float4ID
	Double4ID

	QuathID
	QuatfID
	QuatdID

	Matrix2dID
	Matrix3dID
	Matrix4dID
	Matrix4fID

	Token
	String
	AssetPath

	Dictionary
	TimeSamplesTag

	PathVector
	LayerOffsetID
	ReferenceID
	PayloadID

	Specifier
	Permission
	Variability
	Kind

	Relationship
	ValueBlock

	ListOpToken
	ListOpString
	ListOpPath
	ListOpReference
	ListOpInt
	ListOpUInt
	ListOpInt64
	ListOpUInt64
	ListOpPayload

	// Role types: distinct identity, shared storage with an underlying
	// non-role type (§4.1, UnderlyingTypeID below).
	Point3h
	Point3f
	Point3d
	Normal3h
	Normal3f
	Normal3d
	Vector3h
	Vector3f
	Vector3d
	Color3h
	Color3f
	Color3d
	Color4h
	Color4f
	Color4d
	TexCoord2h
	TexCoord2f
	TexCoord2d
	Frame4d

	// Schema prim body records. Each is a typed record in the value
	// universe per §1; the full schema field surface is an external
	// collaborator (spec.md §1 "deliberately out of scope") so these
	// carry only the fields needed to identify and round-trip the
	// record, plus a generic fallback for any typeName not listed here.
	PrimModel
	PrimXform
	PrimScope
	PrimGeomMesh
	PrimGeomSphere
	PrimGeomCube
	PrimGeomBasisCurves
	PrimGeomPoints
	PrimGeomCamera
	PrimMaterial
	PrimShader
	PrimNodeGraph
	PrimSkelRoot
	PrimSkeleton
	PrimSkelAnimation
	PrimPointInstancer
	PrimDomeLight
	PrimSphereLight
	PrimDistantLight
	PrimRectLight
	PrimVolume
	PrimGeneric // fallback: typeName not in the table above
)

// Trait describes the compile-time-fixed properties of a TypeID: its wire
// name, the byte size of one fixed-size numeric element, and (for role
// types) the underlying storage type it shares.
type Trait struct {
	Name        string
	ID          TypeID
	Underlying  TypeID // 0 (Invalid) if this is not a role type
	ElementSize int    // size in bytes of one scalar element, 0 if not fixed-size numeric
}

var traits = map[TypeID]Trait{
	Bool:   {Name: "bool", ID: Bool, ElementSize: 1},
	UChar:  {Name: "uchar", ID: UChar, ElementSize: 1},
	Int:    {Name: "int", ID: Int, ElementSize: 4},
	UInt:   {Name: "uint", ID: UInt, ElementSize: 4},
	Int64:  {Name: "int64", ID: Int64, ElementSize: 8},
	UInt64: {Name: "uint64", ID: UInt64, ElementSize: 8},

	HalfID: {Name: "half", ID: HalfID, ElementSize: 2},
	Float:  {Name: "float", ID: Float, ElementSize: 4},
	Double: {Name: "double", ID: Double, ElementSize: 8},

	Half2ID:   {Name: "half2", ID: Half2ID, ElementSize: 4},
	Float2ID:  {Name: "float2", ID: Float2ID, ElementSize: 8},
	Double2ID: {Name: "double2", ID: Double2ID, ElementSize: 16},
	Half3ID:   {Name: "half3", ID: Half3ID, ElementSize: 6},
	Float3ID:  {Name: "float3", ID: Float3ID, ElementSize: 12},
	Double3ID: {Name: "double3", ID: Double3ID, ElementSize: 24},
	Half4ID:   {Name: "half4", ID: Half4ID, ElementSize: 8},
	Float4ID:  {Name: "float4", ID: Float4ID, ElementSize: 16},
	Double4ID: {Name: "double4", ID: Double4ID, ElementSize: 32},

	QuathID: {Name: "quath", ID: QuathID, ElementSize: 8},
	QuatfID: {Name: "quatf", ID: QuatfID, ElementSize: 16},
	QuatdID: {Name: "quatd", ID: QuatdID, ElementSize: 32},

	Matrix2dID: {Name: "matrix2d", ID: Matrix2dID, ElementSize: 32},
	Matrix3dID: {Name: "matrix3d", ID: Matrix3dID, ElementSize: 72},
	Matrix4dID: {Name: "matrix4d", ID: Matrix4dID, ElementSize: 128},
	Matrix4fID: {Name: "matrix4f", ID: Matrix4fID, ElementSize: 64},

	Token:     {Name: "token", ID: Token},
	String:    {Name: "string", ID: String},
	AssetPath: {Name: "asset", ID: AssetPath},

	Dictionary:     {Name: "dictionary", ID: Dictionary},
	TimeSamplesTag: {Name: "TimeSamples", ID: TimeSamplesTag},

	PathVector:    {Name: "pathVector", ID: PathVector},
	LayerOffsetID: {Name: "layerOffset", ID: LayerOffsetID},
	ReferenceID:   {Name: "reference", ID: ReferenceID},
	PayloadID:     {Name: "payload", ID: PayloadID},

	Specifier:   {Name: "specifier", ID: Specifier},
	Permission:  {Name: "permission", ID: Permission},
	Variability: {Name: "variability", ID: Variability},
	Kind:        {Name: "kind", ID: Kind},

	Relationship: {Name: "relationship", ID: Relationship},
	ValueBlock:   {Name: "ValueBlock", ID: ValueBlock},

	ListOpToken:     {Name: "token[]listop", ID: ListOpToken},
	ListOpString:    {Name: "string[]listop", ID: ListOpString},
	ListOpPath:      {Name: "path[]listop", ID: ListOpPath},
	ListOpReference: {Name: "reference[]listop", ID: ListOpReference},
	ListOpInt:       {Name: "int[]listop", ID: ListOpInt},
	ListOpUInt:      {Name: "uint[]listop", ID: ListOpUInt},
	ListOpInt64:     {Name: "int64[]listop", ID: ListOpInt64},
	ListOpUInt64:    {Name: "uint64[]listop", ID: ListOpUInt64},
	ListOpPayload:   {Name: "payload[]listop", ID: ListOpPayload},

	Point3h:  {Name: "point3h", ID: Point3h, Underlying: Half3ID, ElementSize: 6},
	Point3f:  {Name: "point3f", ID: Point3f, Underlying: Float3ID, ElementSize: 12},
	Point3d:  {Name: "point3d", ID: Point3d, Underlying: Double3ID, ElementSize: 24},
	Normal3h: {Name: "normal3h", ID: Normal3h, Underlying: Half3ID, ElementSize: 6},
	Normal3f: {Name: "normal3f", ID: Normal3f, Underlying: Float3ID, ElementSize: 12},
	Normal3d: {Name: "normal3d", ID: Normal3d, Underlying: Double3ID, ElementSize: 24},
	Vector3h: {Name: "vector3h", ID: Vector3h, Underlying: Half3ID, ElementSize: 6},
	Vector3f: {Name: "vector3f", ID: Vector3f, Underlying: Float3ID, ElementSize: 12},
	Vector3d: {Name: "vector3d", ID: Vector3d, Underlying: Double3ID, ElementSize: 24},
	Color3h:  {Name: "color3h", ID: Color3h, Underlying: Half3ID, ElementSize: 6},
	Color3f:  {Name: "color3f", ID: Color3f, Underlying: Float3ID, ElementSize: 12},
	Color3d:  {Name: "color3d", ID: Color3d, Underlying: Double3ID, ElementSize: 24},
	Color4h:  {Name: "color4h", ID: Color4h, Underlying: Half4ID, ElementSize: 8},
	Color4f:  {Name: "color4f", ID: Color4f, Underlying: Float4ID, ElementSize: 16},
	Color4d:  {Name: "color4d", ID: Color4d, Underlying: Double4ID, ElementSize: 32},

	TexCoord2h: {Name: "texCoord2h", ID: TexCoord2h, Underlying: Half2ID, ElementSize: 4},
	TexCoord2f: {Name: "texCoord2f", ID: TexCoord2f, Underlying: Float2ID, ElementSize: 8},
	TexCoord2d: {Name: "texCoord2d", ID: TexCoord2d, Underlying: Double2ID, ElementSize: 16},
	Frame4d:    {Name: "frame4d", ID: Frame4d, Underlying: Matrix4dID, ElementSize: 128},

	PrimModel:           {Name: "Model", ID: PrimModel},
	PrimXform:           {Name: "Xform", ID: PrimXform},
	PrimScope:           {Name: "Scope", ID: PrimScope},
	PrimGeomMesh:        {Name: "Mesh", ID: PrimGeomMesh},
	PrimGeomSphere:      {Name: "Sphere", ID: PrimGeomSphere},
	PrimGeomCube:        {Name: "Cube", ID: PrimGeomCube},
	PrimGeomBasisCurves: {Name: "BasisCurves", ID: PrimGeomBasisCurves},
	PrimGeomPoints:      {Name: "Points", ID: PrimGeomPoints},
	PrimGeomCamera:      {Name: "Camera", ID: PrimGeomCamera},
	PrimMaterial:        {Name: "Material", ID: PrimMaterial},
	PrimShader:          {Name: "Shader", ID: PrimShader},
	PrimNodeGraph:       {Name: "NodeGraph", ID: PrimNodeGraph},
	PrimSkelRoot:        {Name: "SkelRoot", ID: PrimSkelRoot},
	PrimSkeleton:        {Name: "Skeleton", ID: PrimSkeleton},
	PrimSkelAnimation:   {Name: "SkelAnimation", ID: PrimSkelAnimation},
	PrimPointInstancer:  {Name: "PointInstancer", ID: PrimPointInstancer},
	PrimDomeLight:       {Name: "DomeLight", ID: PrimDomeLight},
	PrimSphereLight:     {Name: "SphereLight", ID: PrimSphereLight},
	PrimDistantLight:    {Name: "DistantLight", ID: PrimDistantLight},
	PrimRectLight:       {Name: "RectLight", ID: PrimRectLight},
	PrimVolume:          {Name: "Volume", ID: PrimVolume},
	PrimGeneric:         {Name: "", ID: PrimGeneric},
}

var byName map[string]TypeID

func init() {
	byName = make(map[string]TypeID, len(traits))
	for id, t := range traits {
		if t.Name != "" {
			byName[t.Name] = id
		}
	}
}

// TraitOf returns the trait row for id, or the zero Trait if id is unknown.
func TraitOf(id TypeID) Trait {
	return traits[id]
}

// Name returns the wire type name for id ("" if unknown).
func (id TypeID) Name() string {
	return traits[id].Name
}

// UnderlyingTypeID returns the storage type id for a role type, or
// Invalid if id is not a role type.
func (id TypeID) UnderlyingTypeID() TypeID {
	return traits[id].Underlying
}

// IsRoleType reports whether id shares storage with a distinct underlying id.
func (id TypeID) IsRoleType() bool {
	return traits[id].Underlying != Invalid
}

// ElementSize returns the byte size of one scalar element of id, or 0 if
// id has no fixed numeric layout (tokens, strings, dictionaries, ...).
func (id TypeID) ElementSize() int {
	return traits[id].ElementSize
}

// TypeIDByName resolves a wire type name (e.g. "float3", "point3f") to its
// TypeID. ok is false for unrecognized names.
func TypeIDByName(name string) (TypeID, bool) {
	id, ok := byName[name]
	return id, ok
}

// TryGetUnderlyingTypeID resolves a wire type name directly to its
// underlying storage type id, following role-type aliasing. Named after
// value::TryGetUnderlyingTypeId in the reference decoder (usdc-reader.cc)
// per SPEC_FULL.md's supplemented-features note: exposed publicly so
// downstream callers resolving a role type to storage can use it without
// reaching into the trait table.
func TryGetUnderlyingTypeID(name string) (TypeID, bool) {
	id, ok := byName[name]
	if !ok {
		return Invalid, false
	}
	if u := id.UnderlyingTypeID(); u != Invalid {
		return u, true
	}
	return id, true
}

// SchemaTypeID maps an authored Prim typeName to its value-universe
// TypeID, defaulting to PrimGeneric for any name not in the closed
// schema table.
func SchemaTypeID(typeName string) TypeID {
	if id, ok := byName[typeName]; ok {
		if id >= PrimModel && id <= PrimGeneric {
			return id
		}
	}
	return PrimGeneric
}
