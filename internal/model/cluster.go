package model

import "fmt"

// Credentials is a username/password pair, optionally with a Kerberos keytab path.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	KeyTab   string `json:"keyTab,omitempty"`
}

// String masks the password so credentials are safe to log.
func (c Credentials) String() string {
	pw := ""
	if c.Password != "" {
		pw = "****"
	}
	return fmt.Sprintf("{username:%s password:%s}", c.Username, pw)
}

// Cluster is the configuration record of a monitored cluster.
type Cluster struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	ClusterType string      `json:"clusterType"`
	Host        string      `json:"host"`
	Secured     bool        `json:"secured"`
	HTTP        Credentials `json:"http"`
	SSH         Credentials `json:"ssh"`
	Kerberos    Credentials `json:"kerberos"`
}

// NewCluster returns a Cluster with empty strings and default-initialized
// credentials.
func NewCluster() Cluster {
	return Cluster{
		HTTP:     Credentials{},
		SSH:      Credentials{},
		Kerberos: Credentials{},
	}
}

// Redacted returns a copy of c with every password replaced by "****".
func (c Cluster) Redacted() Cluster {
	c.HTTP = c.HTTP.redacted()
	c.SSH = c.SSH.redacted()
	c.Kerberos = c.Kerberos.redacted()
	return c
}

func (c Credentials) redacted() Credentials {
	if c.Password != "" {
		c.Password = "****"
	}
	return c
}
