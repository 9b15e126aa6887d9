package api

import "strings"

// Topic names
const (
	TopicRequest  = "Request"
	TopicResponse = "Response"
	TopicEvent    = "Event"
)

// Message property names used by the broker for filter routing
const (
	PropertyRequestType  = "RequestType"
	PropertyResponseType = "ResponseType"
	PropertyEventType    = "Type"
	PropertyClientName   = "ClientName"
	PropertyEntityName   = "EntityName"
)

// AllClientsSubscription is the name of the subscription without a filter
const AllClientsSubscription = "AllClients"

// SubscriptionName returns AllClients, <client> or <client>.<entity>
func SubscriptionName(clientName, entityName string) string {
	switch {
	case clientName == "":
		return AllClientsSubscription
	case entityName == "":
		return clientName
	default:
		return strings.Join([]string{clientName, entityName}, ".")
	}
}
