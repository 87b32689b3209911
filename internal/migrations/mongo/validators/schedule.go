package validators

import "go.mongodb.org/mongo-driver/bson"

const datePattern = `^[0-9]{4}-[0-9]{2}-[0-9]{2}$`

// ConstraintValidator only admits non-default statuses. Available is the
// absence of a document.
var ConstraintValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"doctor_id", "date", "status"},
		"additionalProperties": true,

		"properties": bson.M{
			"doctor_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  datePattern,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum":     []string{"vacation", "blocked"},
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var LockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "is_locked"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"pattern":  `^[0-9]{4}-[0-9]{2}-01$`,
			},

			"is_locked": bson.M{
				"bsonType": "bool",
			},

			"updated_by": bson.M{
				"bsonType": "string",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var ShiftValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"date", "shift_role"},
		"additionalProperties": true,

		"properties": bson.M{
			"date": bson.M{
				"bsonType": "string",
				"pattern":  datePattern,
			},

			"shift_role": bson.M{
				"bsonType": "string",
				"enum":     []string{"Junior Resident", "Intermediate Resident", "Senior Resident", "Attending"},
			},

			"doctor_id": bson.M{
				"bsonType": []string{"string", "null"},
			},
		},
	},
}
