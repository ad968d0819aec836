package models

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusAssigned  Status = "assigned"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Statuses lists every member of the enumeration in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusAssigned,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

func ParseStatus(name string) (Status, bool) {
	s := Status(name)
	return s, s.Valid()
}

type StatusInfo struct {
	Name  Status `json:"name" xml:"name"`
	Label string `json:"label" xml:"label"`
	Color string `json:"color" xml:"color"`
}

var defaultStatusInfo = map[Status]StatusInfo{
	StatusPending:   {Name: StatusPending, Label: "Pending", Color: "yellow"},
	StatusConfirmed: {Name: StatusConfirmed, Label: "Confirmed", Color: "blue"},
	StatusAssigned:  {Name: StatusAssigned, Label: "Assigned", Color: "purple"},
	StatusCompleted: {Name: StatusCompleted, Label: "Completed", Color: "green"},
	StatusCancelled: {Name: StatusCancelled, Label: "Cancelled", Color: "red"},
	StatusNoShow:    {Name: StatusNoShow, Label: "No Show", Color: "gray"},
}

// StatusCatalog holds the presentation metadata of each status. It is built
// once at startup and only read afterwards.
type StatusCatalog struct {
	info map[Status]StatusInfo
}

// NewStatusCatalog starts from the built-in labels and applies overrides for
// known statuses. Overrides naming an unknown status are ignored.
func NewStatusCatalog(overrides ...StatusInfo) StatusCatalog {
	info := make(map[Status]StatusInfo, len(defaultStatusInfo))
	for k, v := range defaultStatusInfo {
		info[k] = v
	}
	for _, o := range overrides {
		if !o.Name.Valid() {
			continue
		}
		current := info[o.Name]
		if o.Label != "" {
			current.Label = o.Label
		}
		if o.Color != "" {
			current.Color = o.Color
		}
		info[o.Name] = current
	}
	return StatusCatalog{info: info}
}

func (c StatusCatalog) Lookup(s Status) (StatusInfo, bool) {
	if c.info == nil {
		info, ok := defaultStatusInfo[s]
		return info, ok
	}
	info, ok := c.info[s]
	return info, ok
}

func (c StatusCatalog) All() []StatusInfo {
	all := make([]StatusInfo, 0, len(Statuses))
	for _, s := range Statuses {
		info, _ := c.Lookup(s)
		all = append(all, info)
	}
	return all
}
