package api

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/procfs"
	"github.com/scitags/netdev-go/rtnl"
)

const (
	JSON_PRETTY_INDENT string = "    "
)

// Lister is what the API needs out of a rtnl.Client.
type Lister interface {
	ListLinks() ([]rtnl.Link, error)
	ListFDB() ([]rtnl.FDBEntry, error)
}

type registerer interface {
	Register(reg prometheus.Registerer) error
}

type rootResponse struct {
	ApiRoutes []*echo.Route
}

type errorResponse struct {
	Err string `json:"err"`
}

// Stats are the counters /proc/net/dev keeps for an interface.
type Stats struct {
	RxBytes   uint64 `json:"rxBytes"`
	RxPackets uint64 `json:"rxPackets"`
	RxDropped uint64 `json:"rxDropped"`
	TxBytes   uint64 `json:"txBytes"`
	TxPackets uint64 `json:"txPackets"`
	TxDropped uint64 `json:"txDropped"`
}

type LinkInfo struct {
	rtnl.Link
	Up    bool   `json:"up"`
	Stats *Stats `json:"stats,omitempty"`
}

type FDBInfo struct {
	Destination string `json:"destination"`
	Address     string `json:"address"`
	Index       int    `json:"index"`
	State       uint16 `json:"state"`
	Flags       uint8  `json:"flags"`
	Vlan        uint16 `json:"vlan,omitempty"`
}

func NewLinkInfos(links []rtnl.Link, netDev procfs.NetDev) []LinkInfo {
	infos := make([]LinkInfo, 0, len(links))
	for _, l := range links {
		info := LinkInfo{Link: l, Up: l.IsUp()}
		if line, ok := netDev[l.Name]; ok {
			info.Stats = &Stats{
				RxBytes:   line.RxBytes,
				RxPackets: line.RxPackets,
				RxDropped: line.RxDropped,
				TxBytes:   line.TxBytes,
				TxPackets: line.TxPackets,
				TxDropped: line.TxDropped,
			}
		}
		infos = append(infos, info)
	}
	return infos
}

func NewFDBInfos(entries []rtnl.FDBEntry) []FDBInfo {
	infos := make([]FDBInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, FDBInfo{
			Destination: e.Destination,
			Address:     e.HardwareAddr().String(),
			Index:       e.Index,
			State:       e.State,
			Flags:       e.Flags,
			Vlan:        e.Vlan,
		})
	}
	return infos
}
