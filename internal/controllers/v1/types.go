package v1

import (
	ep_uuid "github.com/epargne/backend/internal/uuid"
)

type URIID struct {
	ID ep_uuid.UUID `uri:"id" binding:"required"` // The ID of the resource
}

type URIAllocation struct {
	ID           ep_uuid.UUID `uri:"id" binding:"required"`           // The ID of the project
	AllocationID ep_uuid.UUID `uri:"allocationId" binding:"required"` // The ID of the allocation
}

type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}
