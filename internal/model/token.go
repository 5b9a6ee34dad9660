package model

// HealthToken identifies which cluster snapshot to fetch and the session
// token authorizing the query. A nil *HealthToken means "no token yet".
type HealthToken struct {
	ClusterName string
	Token       string
}
