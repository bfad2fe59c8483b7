package manifest

// EventsNamespace is the XML namespace used by instrumentation manifests.
// Decoding matches elements by local name so that manifests with a missing or
// non-default namespace declaration still parse; the skeleton check in Read
// is what decides structural validity.
const EventsNamespace = "http://schemas.microsoft.com/win/2004/08/events"

// document mirrors the manifest skeleton: root -> instrumentation -> events
// -> provider. Only the provider element carries the payload we model.
type document struct {
	Instrumentation *instrumentationElem `xml:"instrumentation"`
}

type instrumentationElem struct {
	Events *eventsElem `xml:"events"`
}

type eventsElem struct {
	Provider *providerElem `xml:"provider"`
}

// providerElem holds the provider identity and its five child vocabularies.
type providerElem struct {
	GUID      string         `xml:"guid,attr"`
	Name      string         `xml:"name,attr"`
	Tasks     []taskElem     `xml:"tasks>task"`
	Opcodes   []opcodeElem   `xml:"opcodes>opcode"`
	Keywords  []keywordElem  `xml:"keywords>keyword"`
	Templates []templateElem `xml:"templates>template"`
	Events    []eventElem    `xml:"events>event"`
}

type taskElem struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type opcodeElem struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type keywordElem struct {
	Name string `xml:"name,attr"`
	Mask string `xml:"mask,attr"`
}

type templateElem struct {
	TID  string     `xml:"tid,attr"`
	Data []dataElem `xml:"data"`
}

type dataElem struct {
	Name string `xml:"name,attr"`
}

// eventElem holds the raw event attributes before resolution. All fields stay
// strings here; the resolvers own the parse-or-default behavior.
type eventElem struct {
	Value    string `xml:"value,attr"`
	Symbol   string `xml:"symbol,attr"`
	Version  string `xml:"version,attr"`
	Level    string `xml:"level,attr"`
	Task     string `xml:"task,attr"`
	Opcode   string `xml:"opcode,attr"`
	Keywords string `xml:"keywords,attr"`
	Template string `xml:"template,attr"`
}
