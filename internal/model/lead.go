package model

// Lead is the DB entity persisted in the leads table.
// TelefoneNorm is unique and is the de-duplication key.
type Lead struct {
	ID            int64   `db:"id"             json:"id"`
	Nome          string  `db:"nome"           json:"nome"`
	TelefoneRaw   string  `db:"telefone_raw"   json:"telefone_raw"`
	TelefoneNorm  string  `db:"telefone_norm"  json:"telefone_norm"`
	Email         *string `db:"email"          json:"email,omitempty"`
	Perfil        string  `db:"perfil"         json:"perfil"`
	Origem        string  `db:"origem"         json:"origem"`
	Consentimento bool    `db:"consentimento"  json:"consentimento"`
	CreatedAt     string  `db:"created_at"     json:"created_at"` // ISO-8601 UTC
	DayKey        string  `db:"day_key"        json:"day_key"`    // YYYY-MM-DD (UTC)
	Hour          int     `db:"hour"           json:"hour"`       // local hour

	Survey
}

// Survey holds the optional stand questionnaire answers.
type Survey struct {
	AreaSoja         *string `db:"area_soja"         json:"area_soja,omitempty"`
	ClienteBoasafra  *bool   `db:"cliente_boasafra"  json:"cliente_boasafra,omitempty"`
	ComprouUltima    *bool   `db:"comprou_ultima"    json:"comprou_ultima,omitempty"`
	SementesAtuais   *string `db:"sementes_atuais"   json:"sementes_atuais,omitempty"`
	SementesOutras   *string `db:"sementes_outras"   json:"sementes_outras,omitempty"`
	Culturas         *string `db:"culturas"          json:"culturas,omitempty"`
	CulturasOutras   *string `db:"culturas_outras"   json:"culturas_outras,omitempty"`
	ComercialEmpresa *string `db:"comercial_empresa" json:"comercial_empresa,omitempty"`
	ComercialRegiao  *string `db:"comercial_regiao"  json:"comercial_regiao,omitempty"`
	ComercialCargo   *string `db:"comercial_cargo"   json:"comercial_cargo,omitempty"`
}

// LeadInput is the capture payload coming from the kiosk form.
type LeadInput struct {
	Nome          string  `json:"nome"`
	Telefone      string  `json:"telefone"`
	Email         *string `json:"email,omitempty"`
	Perfil        string  `json:"perfil"`
	Origem        string  `json:"origem"`
	Consentimento *bool   `json:"consentimento,omitempty"` // nil => true

	Survey
}
