package api

import "context"

// --- Category Methods ---

func (c *Client) ListCategories(seasonID string) ([]Category, error) {
	return c.listCategories(context.Background(), seasonID)
}

func (c *Client) listCategories(ctx context.Context, seasonID string) ([]Category, error) {
	data, err := c.getContext(ctx, "/seasons/"+escape(seasonID)+"/categories")
	if err != nil {
		return nil, err
	}
	return decodeList[Category](data)
}

func (c *Client) GetCategory(id string) (*Category, error) {
	data, err := c.get("/categories/" + escape(id))
	if err != nil {
		return nil, err
	}
	return decodeOne[Category](data)
}

func (c *Client) CreateCategory(input CategoryInput) (*Category, error) {
	data, err := c.post("/categories", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Category](data)
}

func (c *Client) UpdateCategory(id string, input CategoryInput) (*Category, error) {
	data, err := c.put("/categories/"+escape(id), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Category](data)
}
