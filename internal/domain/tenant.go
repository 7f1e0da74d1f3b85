package domain

// TenantContext identifica al tenant (equipo) y al usuario autenticado de
// la petición en curso. Se pasa explícitamente a cada operación de los
// agregados; nunca se guarda en estado global.
type TenantContext struct {
	TeamID string
	UserID string
}

// Valid indica si el contexto trae un tenant resuelto.
func (t TenantContext) Valid() bool {
	return t.TeamID != ""
}
