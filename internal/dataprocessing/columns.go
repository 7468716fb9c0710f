package dataprocessing

// Canonical column names after renaming.
const (
	ColRowNumber         = "NO_FILA"
	ColFileNumber        = "EXPEDIENTE"
	ColTaxID             = "RUC"
	ColName              = "NOMBRE"
	ColLegalStatus       = "SITUACION_LEGAL"
	ColIncorporationDate = "FECHA_CONSTITUCION"
	ColType              = "TIPO"
	ColCountry           = "PAIS"
	ColRegion            = "REGION"
	ColProvince          = "PROVINCIA"
	ColCanton            = "CANTON"
	ColCity              = "CIUDAD"
	ColStreet            = "CALLE"
	ColNumber            = "NUMERO"
	ColIntersection      = "INTERSECCION"
	ColNeighborhood      = "BARRIO"
	ColPhone             = "TELEFONO"
	ColRepresentative    = "REPRESENTANTE"
	ColPosition          = "CARGO"
	ColCapital           = "CAPITAL_SUSCRITO"
	ColCIIULevel1        = "CIIU_NIVEL_1"
	ColIndustry          = "INDUSTRIA"
	ColCIIULevel6        = "CIIU_NIVEL_6"
	ColLastBalance       = "ULTIMO_BALANCE"
	ColBalanceFiled      = "PRESENTO_BALANCE"
	ColBalanceFiledDate  = "FECHA_PRESENTACION_BALANCE"
)

// ColumnRename maps source sheet headers to canonical names.
// Headers not listed here keep their original name.
var ColumnRename = map[string]string{
	"No. FILA":                           ColRowNumber,
	"EXPEDIENTE":                         ColFileNumber,
	"RUC":                                ColTaxID,
	"NOMBRE":                             ColName,
	"SITUACIÓN LEGAL":                    ColLegalStatus,
	"FECHA_CONSTITUCION":                 ColIncorporationDate,
	"TIPO":                               ColType,
	"PAÍS":                               ColCountry,
	"REGIÓN":                             ColRegion,
	"PROVINCIA":                          ColProvince,
	"CANTÓN":                             ColCanton,
	"CIUDAD":                             ColCity,
	"CALLE":                              ColStreet,
	"NÚMERO":                             ColNumber,
	"INTERSECCIÓN":                       ColIntersection,
	"BARRIO":                             ColNeighborhood,
	"TELÉFONO":                           ColPhone,
	"REPRESENTANTE":                      ColRepresentative,
	"CARGO":                              ColPosition,
	"CAPITAL SUSCRITO":                   ColCapital,
	"CIIU NIVEL 1":                       ColCIIULevel1,
	"INDUSTRIA":                          ColIndustry,
	"CIIU NIVEL 6":                       ColCIIULevel6,
	"ÚLTIMO BALANCE":                     ColLastBalance,
	"PRESENTÓ BALANCE INICIAL":           ColBalanceFiled,
	"FECHA PRESENTACIÓN BALANCE INICIAL": ColBalanceFiledDate,
}

// RequiredColumns must all be present once headers are renamed.
var RequiredColumns = []string{
	ColName,
	ColLegalStatus,
	ColType,
	ColRegion,
	ColProvince,
	ColIndustry,
	ColCapital,
	ColIncorporationDate,
	ColRepresentative,
	ColBalanceFiled,
}
