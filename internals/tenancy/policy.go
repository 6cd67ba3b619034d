// internals/tenancy/policy.go
package tenancy

/* ============================================
   Tabla de políticas de alcance (entidad × rol).

   Esta tabla es EL artefacto normativo: cualquier endpoint cuyo
   comportamiento no se pueda expresar como un lookup aquí es un bug.
   Las combinaciones ausentes resuelven a Deny, nunca a permitir.
   ============================================ */

type ScopeKind uint8

const (
	ScopeDeny ScopeKind = iota
	ScopeOwnRecord
	ScopeOwnSchool
	ScopeAll
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeAll:
		return "ALL"
	case ScopeOwnSchool:
		return "OWN_SCHOOL"
	case ScopeOwnRecord:
		return "OWN_RECORD"
	default:
		return "DENY"
	}
}

type Entity string

const (
	EntitySchool      Entity = "school"
	EntityInstructor  Entity = "instructor"
	EntityStudent     Entity = "student"
	EntityClass       Entity = "class"
	EntityReservation Entity = "reservation"
	EntityPayment     Entity = "payment"
)

type Operation uint8

const (
	OpRead Operation = iota
	OpCreate
	OpUpdate
	OpDelete
)

func (o Operation) IsWrite() bool { return o != OpRead }

func (o Operation) String() string {
	switch o {
	case OpRead:
		return "READ"
	case OpCreate:
		return "CREATE"
	case OpUpdate:
		return "UPDATE"
	default:
		return "DELETE"
	}
}

// cell: alcance de lectura y de escritura para una celda entidad × rol.
type cell struct {
	read  ScopeKind
	write ScopeKind
}

var policyTable = map[Entity]map[Role]cell{
	EntitySchool: {
		RoleAdmin:       {ScopeAll, ScopeAll},
		RoleSchoolAdmin: {ScopeOwnSchool, ScopeOwnSchool},
		RoleInstructor:  {ScopeOwnSchool, ScopeDeny},
		RoleStudent:     {ScopeAll, ScopeDeny}, // catálogo público de escuelas
	},
	EntityInstructor: {
		RoleAdmin:       {ScopeAll, ScopeAll},
		RoleSchoolAdmin: {ScopeOwnSchool, ScopeOwnSchool},
		RoleInstructor:  {ScopeOwnRecord, ScopeOwnRecord}, // solo su propio perfil
		RoleStudent:     {ScopeDeny, ScopeDeny},
	},
	EntityStudent: {
		RoleAdmin:       {ScopeAll, ScopeAll},
		RoleSchoolAdmin: {ScopeOwnSchool, ScopeOwnSchool},
		RoleInstructor:  {ScopeDeny, ScopeDeny},
		RoleStudent:     {ScopeOwnRecord, ScopeOwnRecord},
	},
	EntityClass: {
		RoleAdmin:       {ScopeAll, ScopeAll},
		RoleSchoolAdmin: {ScopeOwnSchool, ScopeOwnSchool},
		RoleInstructor:  {ScopeOwnSchool, ScopeDeny},
		RoleStudent:     {ScopeAll, ScopeDeny}, // debe descubrir clases de todas las escuelas
	},
	EntityReservation: {
		RoleAdmin:       {ScopeAll, ScopeAll},
		RoleSchoolAdmin: {ScopeOwnSchool, ScopeOwnSchool}, // vía Class
		RoleInstructor:  {ScopeOwnSchool, ScopeDeny},      // vía Class
		RoleStudent:     {ScopeOwnRecord, ScopeOwnRecord},
	},
	EntityPayment: {
		RoleAdmin:       {ScopeAll, ScopeAll},
		RoleSchoolAdmin: {ScopeOwnSchool, ScopeOwnSchool}, // vía Reservation→Class
		RoleInstructor:  {ScopeDeny, ScopeDeny},
		RoleStudent:     {ScopeOwnRecord, ScopeOwnRecord}, // vía Reservation.userId
	},
}

// ScopeFor resuelve la celda de la tabla. Una combinación no listada es Deny.
func ScopeFor(ident Identity, entity Entity, op Operation) ScopeKind {
	byRole, ok := policyTable[entity]
	if !ok {
		return ScopeDeny
	}
	c, ok := byRole[ident.Role]
	if !ok {
		return ScopeDeny
	}
	if op.IsWrite() {
		return c.write
	}
	return c.read
}
