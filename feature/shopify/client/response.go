package client

// Wire types for the admin GraphQL responses. Only the fields the three
// query shapes request are modeled.

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data struct {
		Products productConnection `json:"products"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type productConnection struct {
	PageInfo pageInfo      `json:"pageInfo"`
	Edges    []productEdge `json:"edges"`
}

type productEdge struct {
	Node productNode `json:"node"`
}

type productNode struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Variants struct {
		Edges []variantEdge `json:"edges"`
	} `json:"variants"`
}

type variantEdge struct {
	Node variantNode `json:"node"`
}

type variantNode struct {
	ID             string  `json:"id"`
	SKU            string  `json:"sku"`
	Barcode        string  `json:"barcode"`
	Price          *string `json:"price"`
	CompareAtPrice *string `json:"compareAtPrice"`
	InventoryItem  struct {
		ID              string `json:"id"`
		InventoryLevels struct {
			Edges []inventoryLevelEdge `json:"edges"`
		} `json:"inventoryLevels"`
	} `json:"inventoryItem"`
}

type inventoryLevelEdge struct {
	Node inventoryLevel `json:"node"`
}

type inventoryLevel struct {
	Location struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"location"`
	Quantities []quantityEntry `json:"quantities"`
}

type quantityEntry struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
