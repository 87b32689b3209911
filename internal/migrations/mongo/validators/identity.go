package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"email", "system_role"},
		"additionalProperties": true,

		"properties": bson.M{
			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
				"pattern":   "^[^A-Z]+$",
			},

			"system_role": bson.M{
				"bsonType": "string",
				"enum":     []string{"admin", "member"},
			},

			"doctor_id": bson.M{
				"bsonType": []string{"string", "null"},
			},
		},
	},
}

var DoctorValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"full_name", "medical_role"},
		"additionalProperties": true,

		"properties": bson.M{
			"full_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"medical_role": bson.M{
				"bsonType": "string",
				"enum":     []string{"resident", "attending"},
			},

			"qualification": bson.M{
				"bsonType": []string{"string", "null"},
				"enum":     []any{"Junior", "Intermediate", "Senior", nil},
			},

			"specialty": bson.M{
				"bsonType": []string{"string", "null"},
			},

			"user_id": bson.M{
				"bsonType": []string{"string", "null"},
			},
		},
	},
}
