package domain

// RouteAccessRule declares who may reach a view. A nil AllowedRoles admits
// every authenticated identity; Public routes skip the guard entirely.
type RouteAccessRule struct {
	Path         string `yaml:"path"          json:"path"`
	AllowedRoles []Role `yaml:"allowed_roles" json:"allowedRoles,omitempty"`
	Public       bool   `yaml:"public"        json:"public,omitempty"`
	Title        string `yaml:"title"         json:"title,omitempty"`
	Nav          bool   `yaml:"nav"           json:"nav,omitempty"`
}
