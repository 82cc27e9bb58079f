package types

type ConnectorName string

const (
	ConnectorDummy = ConnectorName("dummy") // dummy connector
	ConnectorSerum = ConnectorName("serum")
)
