package qualified

import (
	"time"

	"example.com/app/cloud"
	geo "example.com/app/geo/regions"
)

// Deployment selects where the service runs.
//
//go:confgen:config scope="deploy"
type Deployment struct {
	Region  geo.Region    `confgen:"region,default=.EU"`
	Zone    cloud.Zone    `confgen:"zone,default=cloud.ZoneA"`
	Name    string        `confgen:"name,default=\"svc\""`
	Timeout time.Duration `json:"timeout"`
}

// Platform groups the settings of every deployment target.
//
//go:confgen:group
type Platform struct {
	Deployment Deployment
	GCP        *cloud.GCPConfig
}
