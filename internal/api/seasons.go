package api

// --- Season Methods ---

func (c *Client) ListSeasons(championshipID string) ([]Season, error) {
	data, err := c.get("/championships/" + escape(championshipID) + "/seasons")
	if err != nil {
		return nil, err
	}
	return decodeList[Season](data)
}

func (c *Client) GetSeason(id string) (*Season, error) {
	data, err := c.get("/seasons/" + escape(id))
	if err != nil {
		return nil, err
	}
	return decodeOne[Season](data)
}

func (c *Client) CreateSeason(input SeasonInput) (*Season, error) {
	data, err := c.post("/seasons", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Season](data)
}

func (c *Client) UpdateSeason(id string, input SeasonInput) (*Season, error) {
	data, err := c.put("/seasons/"+escape(id), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Season](data)
}
