package api

// --- Championship Methods ---

func (c *Client) ListChampionships() ([]Championship, error) {
	data, err := c.get("/championships")
	if err != nil {
		return nil, err
	}
	return decodeList[Championship](data)
}

func (c *Client) GetChampionship(id string) (*Championship, error) {
	data, err := c.get("/championships/" + escape(id))
	if err != nil {
		return nil, err
	}
	return decodeOne[Championship](data)
}

func (c *Client) CreateChampionship(input ChampionshipInput) (*Championship, error) {
	data, err := c.post("/championships", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Championship](data)
}

func (c *Client) UpdateChampionship(id string, input ChampionshipInput) (*Championship, error) {
	data, err := c.put("/championships/"+escape(id), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Championship](data)
}
