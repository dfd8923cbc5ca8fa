package profileservice

// Роли профилей в маркетплейсе
const (
	RoleClient   = "client"
	RoleProvider = "provider"
)

// Profile модель профиля из ProfileService
type Profile struct {
	Principal string  `json:"principal"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role"` // client | provider
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// IsProvider возвращает true, если профиль принадлежит провайдеру услуг
func (p *Profile) IsProvider() bool {
	return p.Role == RoleProvider
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
