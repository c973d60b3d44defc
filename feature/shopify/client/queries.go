package client

// The three fixed query shapes. Full and incremental differ only in the
// server-side updated_at filter; price-only omits quantities and locations
// entirely so it never fans out per location.

const fullInventoryQuery = `
query($cursor: String) {
  products(first: 250, after: $cursor) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        title
        variants(first: 100) {
          edges {
            node {
              id
              sku
              barcode
              price
              compareAtPrice
              inventoryItem {
                id
                inventoryLevels(first: 10) {
                  edges {
                    node {
                      location {
                        id
                        name
                      }
                      quantities(names: ["available", "incoming", "reserved", "damaged", "on_hand"]) {
                        name
                        quantity
                      }
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

const incrementalInventoryQuery = `
query($cursor: String, $query: String) {
  products(first: 250, after: $cursor, query: $query) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        title
        updatedAt
        variants(first: 100) {
          edges {
            node {
              id
              sku
              barcode
              price
              compareAtPrice
              inventoryItem {
                id
                inventoryLevels(first: 10) {
                  edges {
                    node {
                      location {
                        id
                        name
                      }
                      quantities(names: ["available", "incoming", "reserved", "damaged", "on_hand"]) {
                        name
                        quantity
                      }
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

const priceQuery = `
query($cursor: String) {
  products(first: 250, after: $cursor) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        variants(first: 100) {
          edges {
            node {
              id
              sku
              barcode
              price
              compareAtPrice
            }
          }
        }
      }
    }
  }
}`
