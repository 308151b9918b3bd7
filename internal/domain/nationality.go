package domain

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// Nationality is a country code from the closed list offered by the form.
type Nationality string

var nationalityLabels = map[Nationality]string{
	"afeganistao": "Afeganistão",
	"africa-do-sul": "África do Sul",
	"albania": "Albânia",
	"alemanha": "Alemanha",
	"andorra": "Andorra",
	"angola": "Angola",
	"antigua-e-barbuda": "Antígua e Barbuda",
	"arabia-saudita": "Arábia Saudita",
	"argelia": "Argélia",
	"argentina": "Argentina",
	"armenia": "Armênia",
	"australia": "Austrália",
	"austria": "Áustria",
	"azerbaijao": "Azerbaijão",
	"bahamas": "Bahamas",
	"bahrein": "Bahrein",
	"bangladesh": "Bangladesh",
	"barbados": "Barbados",
	"belarus": "Belarus",
	"belgica": "Bélgica",
	"belize": "Belize",
	"benin": "Benin",
	"bolivia": "Bolívia",
	"bosnia-e-herzegovina": "Bósnia e Herzegovina",
	"botswana": "Botswana",
	"brasil": "Brasil",
	"brunei": "Brunei",
	"bulgaria": "Bulgária",
	"burkina-faso": "Burkina Faso",
	"burundi": "Burundi",
	"butao": "Butão",
	"cabo-verde": "Cabo Verde",
	"camaroes": "Camarões",
	"camboja": "Camboja",
	"canada": "Canadá",
	"catar": "Catar",
	"cazaquistao": "Cazaquistão",
	"chade": "Chade",
	"chile": "Chile",
	"china": "China",
	"chipre": "Chipre",
	"colombia": "Colômbia",
	"comores": "Comores",
	"congo": "Congo",
	"coreia-do-norte": "Coreia do Norte",
	"coreia-do-sul": "Coreia do Sul",
	"costa-do-marfim": "Costa do Marfim",
	"costa-rica": "Costa Rica",
	"croacia": "Croácia",
	"cuba": "Cuba",
	"dinamarca": "Dinamarca",
	"djibouti": "Djibouti",
	"dominica": "Dominica",
	"egito": "Egito",
	"el-salvador": "El Salvador",
	"emirados-arabes-unidos": "Emirados Árabes Unidos",
	"equador": "Equador",
	"eritreia": "Eritreia",
	"eslovaquia": "Eslováquia",
	"eslovenia": "Eslovênia",
	"espanha": "Espanha",
	"estados-unidos": "Estados Unidos",
	"estonia": "Estônia",
	"etiopia": "Etiópia",
	"fiji": "Fiji",
	"filipinas": "Filipinas",
	"finlandia": "Finlândia",
	"franca": "França",
	"gabao": "Gabão",
	"gambia": "Gâmbia",
	"gana": "Gana",
	"georgia": "Geórgia",
	"granada": "Granada",
	"grecia": "Grécia",
	"guatemala": "Guatemala",
	"guiana": "Guiana",
	"guine": "Guiné",
	"guine-bissau": "Guiné-Bissau",
	"guine-equatorial": "Guiné Equatorial",
	"haiti": "Haiti",
	"honduras": "Honduras",
	"hungria": "Hungria",
	"iemen": "Iêmen",
	"ilhas-marshall": "Ilhas Marshall",
	"ilhas-salomao": "Ilhas Salomão",
	"india": "Índia",
	"indonesia": "Indonésia",
	"ira": "Irã",
	"iraque": "Iraque",
	"irlanda": "Irlanda",
	"islandia": "Islândia",
	"israel": "Israel",
	"italia": "Itália",
	"jamaica": "Jamaica",
	"japao": "Japão",
	"jordania": "Jordânia",
	"kuwait": "Kuwait",
	"laos": "Laos",
	"lesoto": "Lesoto",
	"letonia": "Letônia",
	"libano": "Líbano",
	"liberia": "Libéria",
	"libia": "Líbia",
	"liechtenstein": "Liechtenstein",
	"lituania": "Lituânia",
	"luxemburgo": "Luxemburgo",
	"macedonia": "Macedônia",
	"madagascar": "Madagascar",
	"malasia": "Malásia",
	"malawi": "Malawi",
	"maldivas": "Maldivas",
	"mali": "Mali",
	"malta": "Malta",
	"marrocos": "Marrocos",
	"mauricio": "Maurício",
	"mauritania": "Mauritânia",
	"mexico": "México",
	"micronesia": "Micronésia",
	"mocambique": "Moçambique",
	"moldavia": "Moldávia",
	"monaco": "Mônaco",
	"mongolia": "Mongólia",
	"montenegro": "Montenegro",
	"myanmar": "Myanmar",
	"namibia": "Namíbia",
	"nauru": "Nauru",
	"nepal": "Nepal",
	"nicaragua": "Nicarágua",
	"niger": "Níger",
	"nigeria": "Nigéria",
	"noruega": "Noruega",
	"nova-zelandia": "Nova Zelândia",
	"oma": "Omã",
	"paises-baixos": "Países Baixos",
	"palau": "Palau",
	"panama": "Panamá",
	"papua-nova-guine": "Papua-Nova Guiné",
	"paquistao": "Paquistão",
	"paraguai": "Paraguai",
	"peru": "Peru",
	"polonia": "Polônia",
	"portugal": "Portugal",
	"quenia": "Quênia",
	"quirguistao": "Quirguistão",
	"reino-unido": "Reino Unido",
	"republica-centro-africana": "República Centro-Africana",
	"republica-checa": "República Checa",
	"republica-democratica-do-congo": "República Democrática do Congo",
	"republica-dominicana": "República Dominicana",
	"romenia": "Romênia",
	"ruanda": "Ruanda",
	"russia": "Rússia",
	"samoa": "Samoa",
	"san-marino": "San Marino",
	"santa-lucia": "Santa Lúcia",
	"sao-cristovao-e-nevis": "São Cristóvão e Nevis",
	"sao-tome-e-principe": "São Tomé e Príncipe",
	"sao-vicente-e-granadinas": "São Vicente e Granadinas",
	"seicheles": "Seicheles",
	"senegal": "Senegal",
	"serra-leoa": "Serra Leoa",
	"servia": "Sérvia",
	"singapura": "Singapura",
	"siria": "Síria",
	"somalia": "Somália",
	"sri-lanka": "Sri Lanka",
	"suazilandia": "Suazilândia",
	"sudao": "Sudão",
	"sudao-do-sul": "Sudão do Sul",
	"suecia": "Suécia",
	"suica": "Suíça",
	"suriname": "Suriname",
	"tailandia": "Tailândia",
	"taiwan": "Taiwan",
	"tajiquistao": "Tajiquistão",
	"tanzania": "Tanzânia",
	"timor-leste": "Timor-Leste",
	"togo": "Togo",
	"tonga": "Tonga",
	"trinidad-e-tobago": "Trinidad e Tobago",
	"tunisia": "Tunísia",
	"turcomenistao": "Turcomenistão",
	"turquia": "Turquia",
	"tuvalu": "Tuvalu",
	"ucrania": "Ucrânia",
	"uganda": "Uganda",
	"uruguai": "Uruguai",
	"uzbequistao": "Uzbequistão",
	"vanuatu": "Vanuatu",
	"vaticano": "Vaticano",
	"venezuela": "Venezuela",
	"vietna": "Vietnã",
	"zambia": "Zâmbia",
	"zimbabue": "Zimbábue",
}

func ParseNationality(s string) (Nationality, error) {
	n := Nationality(s)
	if _, ok := nationalityLabels[n]; !ok {
		return "", errors.Wrapf(ErrUnknownCode, "nationality %q", s)
	}
	return n, nil
}

func (n Nationality) Label() string {
	return nationalityLabels[n]
}

// Nationalities returns every known code in lexical order.
func Nationalities() []Nationality {
	out := make([]Nationality, 0, len(nationalityLabels))
	for n := range nationalityLabels {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
